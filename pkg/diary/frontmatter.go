package diary

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// encodeFrontmatter renders the metadata block. The block is written by hand
// rather than through yaml.Marshal so dates and timestamps stay unquoted and
// the tag list stays in flow style on one line.
func encodeFrontmatter(m Meta) string {
	var sb strings.Builder
	sb.WriteString(frontmatterDelimiter + "\n")
	sb.WriteString("date: " + m.Date + "\n")
	sb.WriteString("modification_date: " + m.ModifiedAt + "\n")
	sb.WriteString("tags: [" + strings.Join(m.Tags, ", ") + "]\n")
	sb.WriteString(frontmatterDelimiter)
	return sb.String()
}

// splitFrontmatter separates the metadata block from the body. When the text
// does not open with a delimiter line, or the block is never closed, ok is
// false and the whole text is body.
func splitFrontmatter(raw string) (block, body string, ok bool) {
	text := strings.TrimPrefix(raw, "\ufeff")
	first, rest, found := strings.Cut(text, "\n")
	if !found || !isDelimiter(first) {
		return "", raw, false
	}

	offset := 0
	for {
		line, next, more := strings.Cut(rest[offset:], "\n")
		if isDelimiter(line) {
			block = rest[:offset]
			if more {
				body = "\n" + next
			}
			return block, body, true
		}
		if !more {
			return "", raw, false
		}
		offset += len(line) + 1
	}
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontmatterDelimiter
}

// decodeFrontmatter reads the known keys from a metadata block. Each value is
// decoded on its own so one malformed line cannot hide the others; unknown
// keys are ignored.
func decodeFrontmatter(block string) Meta {
	var m Meta
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "date":
			m.Date = decodeScalar(value)
		case "modification_date":
			m.ModifiedAt = decodeScalar(value)
		case "tags":
			m.Tags = decodeTagList(value)
		}
	}
	return m
}

// decodeScalar returns the literal text of a YAML scalar, unquoting it when
// needed. Values that are not scalars are returned as written.
func decodeScalar(value string) string {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(value), &node); err != nil {
		return value
	}
	if len(node.Content) == 1 && node.Content[0].Kind == yaml.ScalarNode {
		return node.Content[0].Value
	}
	return value
}

// decodeTagList parses a flow sequence such as "[a, b]". Anything that is not
// a sequence of scalars degrades to an empty set.
func decodeTagList(value string) []string {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(value), &node); err != nil {
		return nil
	}
	if len(node.Content) != 1 || node.Content[0].Kind != yaml.SequenceNode {
		return nil
	}
	var tags []string
	for _, item := range node.Content[0].Content {
		if item.Kind != yaml.ScalarNode {
			continue
		}
		if tag := strings.TrimSpace(item.Value); tag != "" {
			tags = append(tags, tag)
		}
	}
	return dedupeTags(tags)
}
