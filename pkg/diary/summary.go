package diary

import (
	"context"
	"fmt"
	"strings"
)

const (
	summaryPreviewEntries = 3
	summaryPreviewRunes   = 50
)

// DaySummary renders a short digest of one day for the daily overview.
func DaySummary(ctx context.Context, store Store, day Day) string {
	doc, err := store.Load(ctx, day)
	if err != nil {
		return "📝 Diary: unavailable (" + Describe(err) + ")"
	}

	entries := validEntries(doc.Entries)
	if len(entries) == 0 {
		return "📝 Diary: No entries"
	}

	lines := []string{fmt.Sprintf("📝 Diary: %d entries", len(entries))}
	for i, e := range entries {
		if i == summaryPreviewEntries {
			lines = append(lines, fmt.Sprintf("  ... and %d more entries", len(entries)-summaryPreviewEntries))
			break
		}
		tags := ""
		if len(e.Tags) > 0 {
			tags = " [" + strings.Join(e.Tags, ", ") + "]"
		}
		lines = append(lines, fmt.Sprintf("  - %s%s %s", e.Clock, tags, preview(e.Content, summaryPreviewRunes)))
	}
	return strings.Join(lines, "\n")
}

// WeekSummary counts entries over the seven days ending today.
func WeekSummary(ctx context.Context, store Store) string {
	now := store.Now()
	from := DayOf(now.AddDate(0, 0, -6))
	days, err := store.Days(ctx, from, DayOf(now))
	if err != nil {
		return "📝 Diary: unavailable (" + Describe(err) + ")"
	}

	total := 0
	for _, day := range days {
		doc, err := store.Load(ctx, day)
		if err != nil {
			continue
		}
		total += len(validEntries(doc.Entries))
	}
	return fmt.Sprintf("📝 Diary: %d entries this week", total)
}

func validEntries(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Valid {
			out = append(out, e)
		}
	}
	return out
}
