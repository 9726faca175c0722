package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// NoResultsMessage is returned by SearchEntries when nothing matches.
	NoResultsMessage = "No matching diary entries found"

	// DefaultLookback is the search window used when no start is given.
	DefaultLookback = 30 * 24 * time.Hour

	maxDisplayRunes = 100
)

var boundLayouts = []string{stampLayout, "2006-01-02 15:04", dayLayout}

// AppendInput is the loosely typed input of AppendEntry, as received from a
// tool call or the command line.
type AppendInput struct {
	// DateTime is "YYYY-MM-DD HH:MM:SS" (or without seconds). Empty means now.
	DateTime string
	Content  string
	Tags     []string
}

// SearchRequest is the loosely typed input of SearchEntries. Empty fields
// mean no filter, or the default range for Start and End.
type SearchRequest struct {
	Keyword string
	Tag     string
	Start   string
	End     string
}

// AppendEntry adds an entry and describes the outcome as a single line.
// It never returns an error; failures are reported in the text.
func AppendEntry(ctx context.Context, store Store, in AppendInput) string {
	at := store.Now()
	if raw := strings.TrimSpace(in.DateTime); raw != "" {
		t, err := parseStamp(raw, store.Location())
		if err != nil {
			return fmt.Sprintf("Invalid datetime format: %s. Use YYYY-MM-DD HH:MM:SS", in.DateTime)
		}
		at = t
	}

	entry, err := store.Append(ctx, AppendRequest{
		Day:     DayOf(at),
		Clock:   at.Format(clockLayout),
		Content: in.Content,
		Tags:    in.Tags,
	})
	if err != nil {
		return "Error: " + Describe(err)
	}

	msg := "Diary entry added for " + at.Format(stampLayout)
	if len(entry.Tags) > 0 {
		msg += " [tags: " + strings.Join(entry.Tags, ", ") + "]"
	}
	return msg
}

// SearchEntries runs a search and renders the result as a report grouped
// by day.
func SearchEntries(ctx context.Context, store Store, req SearchRequest) string {
	report, _ := SearchReport(ctx, store, req)
	return report
}

// SearchReport is SearchEntries that also returns the number of matching
// entries. The count is zero whenever the report explains a failure.
func SearchReport(ctx context.Context, store Store, req SearchRequest) (string, int) {
	start, end, err := ResolveRange(req.Start, req.End, store.Now(), store.Location())
	if err != nil {
		return Describe(err), 0
	}
	results, err := store.Search(ctx, Query{
		Keyword: req.Keyword,
		Tag:     req.Tag,
		Start:   start,
		End:     end,
	})
	if err != nil {
		return "Error: " + Describe(err), 0
	}
	return FormatResults(results), len(results)
}

// ResolveRange turns optional bound strings into an inclusive time range.
// A missing start is now minus DefaultLookback and a missing end is now.
// Date-only bounds cover the whole day: a start means 00:00:00 and an end
// means 23:59:59.
func ResolveRange(start, end string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	from := now.Add(-DefaultLookback)
	to := now
	var err error
	if s := strings.TrimSpace(start); s != "" {
		if from, err = parseBound(s, loc, false); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if s := strings.TrimSpace(end); s != "" {
		if to, err = parseBound(s, loc, true); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: Invalid range: start %s is after end %s",
			ErrInvalidInput, from.Format(stampLayout), to.Format(stampLayout))
	}
	return from, to, nil
}

func parseBound(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	for _, layout := range boundLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if layout == dayLayout && endOfDay {
			t = DayOf(t).At(23, 59, 59, loc)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: Invalid datetime format: %s. Use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS",
		ErrInvalidInput, s)
}

// parseStamp parses an append timestamp. Seconds are optional.
func parseStamp(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range boundLayouts[:2] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: datetime %q", ErrInvalidInput, s)
}

// FormatResults renders search results, starting a new "Date:" group each
// time the day changes.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return NoResultsMessage
	}

	lines := []string{"Diary Entries:", ""}
	var current Day
	for i, r := range results {
		if i == 0 || r.Day != current {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, "Date: "+r.Day.String())
			current = r.Day
		}
		tags := ""
		if len(r.Entry.Tags) > 0 {
			tags = " [" + strings.Join(r.Entry.Tags, ", ") + "]"
		}
		lines = append(lines, fmt.Sprintf("  [%s]%s %s", r.Entry.Clock, tags, preview(r.Entry.Content, maxDisplayRunes)))
	}
	return strings.Join(lines, "\n")
}

// preview flattens whitespace and cuts s to limit runes, marking the cut.
func preview(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// Describe returns err's message without the ErrInvalidInput prefix, for
// text shown to users.
func Describe(err error) string {
	msg := err.Error()
	if errors.Is(err, ErrInvalidInput) {
		msg = strings.TrimPrefix(msg, ErrInvalidInput.Error()+": ")
	}
	return msg
}
