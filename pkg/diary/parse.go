package diary

import (
	"strings"
	"time"
)

// section is the raw text of one "## HH:MM" block.
type section struct {
	clock string
	lines []string
}

// scanSections splits a body into sections. Text before the first header
// belongs to no section and is dropped.
func scanSections(body string) []section {
	var sections []section
	for _, line := range strings.Split(body, "\n") {
		if clock, ok := headerClock(line); ok {
			sections = append(sections, section{clock: clock})
			continue
		}
		if len(sections) > 0 {
			last := &sections[len(sections)-1]
			last.lines = append(last.lines, line)
		}
	}
	return sections
}

// headerClock recognises a section header: "##", whitespace, then a clock
// shaped like HH:MM or HH:MM:SS. The digits are not range-checked here; a
// header such as "## 25:61" still starts a section.
func headerClock(line string) (string, bool) {
	line = strings.TrimRight(line, " \t\r")
	rest, ok := strings.CutPrefix(line, "##")
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	clock := strings.TrimLeft(rest, " \t")
	if !clockShaped(clock) {
		return "", false
	}
	return clock, true
}

func clockShaped(s string) bool {
	switch len(s) {
	case 5:
		return digits(s[0:2]) && s[2] == ':' && digits(s[3:5])
	case 8:
		return digits(s[0:2]) && s[2] == ':' && digits(s[3:5]) && s[5] == ':' && digits(s[6:8])
	default:
		return false
	}
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseClock validates a stored clock and returns its components.
func parseClock(clock string) (hour, minute, sec int, ok bool) {
	layout := clockLayout
	if len(clock) == len(clockSecLayout) {
		layout = clockSecLayout
	}
	t, err := time.Parse(layout, clock)
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Hour(), t.Minute(), t.Second(), true
}

// parseBody turns a markdown body into entries in file order. Sections whose
// content is empty once tag markers are removed are dropped.
func parseBody(day Day, body string, loc *time.Location) []Entry {
	sections := scanSections(body)
	entries := make([]Entry, 0, len(sections))
	for _, s := range sections {
		content, tags := stripTags(strings.Join(s.lines, "\n"))
		if content == "" {
			continue
		}
		entry := Entry{Clock: s.clock, Content: content, Tags: tags}
		if h, m, sec, ok := parseClock(s.clock); ok {
			entry.Time = day.At(h, m, sec, loc)
			entry.Valid = true
		}
		entries = append(entries, entry)
	}
	return entries
}

// adoptOrphanTags handles files whose frontmatter lists tags that no entry
// carries inline, which happens when the frontmatter was edited by hand or
// the file predates inline markers. Those tags are given to every entry that
// has no inline tags of its own.
func adoptOrphanTags(meta Meta, entries []Entry) {
	if len(meta.Tags) == 0 {
		return
	}
	carried := make(map[string]bool)
	for _, e := range entries {
		for _, t := range e.Tags {
			carried[strings.ToLower(t)] = true
		}
	}
	var orphans []string
	for _, t := range meta.Tags {
		if !carried[strings.ToLower(t)] {
			orphans = append(orphans, t)
		}
	}
	if len(orphans) == 0 {
		return
	}
	for i := range entries {
		if len(entries[i].Tags) == 0 {
			entries[i].Tags = append([]string(nil), orphans...)
		}
	}
}
