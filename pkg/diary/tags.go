package diary

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// isTagRune reports whether r may appear in a tag name. Letters, digits and
// combining marks of any script are allowed, plus '_' and '-'.
func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_' || r == '-'
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimPrefix(strings.TrimSpace(b), "#"))
}

// normalizeTags cleans caller-supplied tags: surrounding whitespace and one
// leading '#' are removed, empty tags are dropped and duplicates (ignoring
// case) collapse to their first spelling.
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	for i, raw := range tags {
		tag := strings.TrimPrefix(strings.TrimSpace(raw), "#")
		if tag == "" {
			continue
		}
		for _, r := range tag {
			if !isTagRune(r) {
				return nil, fmt.Errorf("%w: tag %q at position %d may only contain letters, digits, '_' and '-'",
					ErrInvalidInput, raw, i)
			}
		}
		out = append(out, tag)
	}
	return dedupeTags(out), nil
}

// dedupeTags keeps the first spelling of each tag, comparing case-insensitively.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// unionTags merges tag sets and sorts the result by lower-cased value, then
// by raw value, so the output is stable regardless of input order.
func unionTags(sets ...[]string) []string {
	var all []string
	for _, set := range sets {
		all = append(all, set...)
	}
	merged := dedupeTags(all)
	sort.SliceStable(merged, func(i, j int) bool {
		li, lj := strings.ToLower(merged[i]), strings.ToLower(merged[j])
		if li != lj {
			return li < lj
		}
		return merged[i] < merged[j]
	})
	return merged
}

// stripTags removes inline #tag markers from text and returns the cleaned
// text together with the tags found, in order of appearance.
func stripTags(text string) (string, []string) {
	lines := strings.Split(text, "\n")
	var tags []string
	for i, line := range lines {
		cleaned, found := stripLineTags(line)
		tags = append(tags, found...)
		lines[i] = cleaned
	}
	return tidyLines(lines), dedupeTags(tags)
}

// stripLineTags scans one line for markers. A marker is '#' at the start of
// the line or after whitespace, followed by at least one tag rune. Lines that
// lose a marker get their horizontal whitespace collapsed.
func stripLineTags(line string) (string, []string) {
	runes := []rune(line)
	var (
		b    strings.Builder
		tags []string
	)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '#' && (i == 0 || unicode.IsSpace(runes[i-1])) {
			j := i + 1
			for j < len(runes) && isTagRune(runes[j]) {
				j++
			}
			if j > i+1 {
				tags = append(tags, string(runes[i+1:j]))
				i = j
				continue
			}
		}
		b.WriteRune(r)
		i++
	}
	if len(tags) == 0 {
		return line, nil
	}
	return strings.Join(strings.Fields(b.String()), " "), tags
}

// tidyLines drops trailing whitespace, squeezes runs of blank lines to one
// and trims the result.
func tidyLines(lines []string) string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
