package diary

import (
	"errors"
	"fmt"
	"time"
)

const (
	dayLayout      = "2006-01-02"
	clockLayout    = "15:04"
	clockSecLayout = "15:04:05"
	stampLayout    = "2006-01-02 15:04:05"
)

// ErrInvalidInput marks validation failures. Nothing is written when an
// operation fails with it.
var ErrInvalidInput = errors.New("diary: invalid input")

// Day is a calendar date with no time-of-day or location.
type Day struct {
	Year  int
	Month time.Month
	Dom   int
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return DayOf(t), nil
}

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Dom: d}
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Dom)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

// At returns the instant on d at the given clock time in loc.
func (d Day) At(hour, minute, sec int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Dom, hour, minute, sec, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Day) Compare(o Day) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Dom, o.Dom)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Entry is one timestamped journal note within a day file.
type Entry struct {
	// Time is the entry's day plus its clock time. Zero when Valid is false.
	Time time.Time

	// Clock is the time-of-day exactly as stored ("HH:MM" or "HH:MM:SS").
	Clock string

	// Content is the display text with inline tag markers removed.
	Content string

	// Tags keep their stored spelling; comparisons are case-insensitive.
	Tags []string

	// Valid is false when the stored clock could not be parsed. Invalid
	// entries are kept in documents but never returned by Search.
	Valid bool

	// Created is when the entry was written, for codecs that record it.
	Created time.Time
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if equalFold(t, tag) {
			return true
		}
	}
	return false
}

// Meta is the per-file metadata block.
type Meta struct {
	Date       string
	ModifiedAt string
	Tags       []string
}

// Document is a decoded day file.
type Document struct {
	Day     Day
	Meta    Meta
	Entries []Entry

	// Body is the codec-specific text that follows the metadata block. Codecs
	// that rebuild the whole file from Entries leave it empty.
	Body string
}

// Tags returns the sorted union of every entry's tags.
func (d *Document) Tags() []string {
	sets := make([][]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		sets = append(sets, e.Tags)
	}
	return unionTags(sets...)
}

// AppendRequest describes one new entry.
type AppendRequest struct {
	Day     Day
	Clock   string // "HH:MM" or "HH:MM:SS"; stored at minute resolution
	Content string
	Tags    []string
}

// Query selects entries for Search. Start and End are inclusive.
type Query struct {
	Keyword string
	Tag     string
	Start   time.Time
	End     time.Time
}

// Result pairs a matching entry with the day file it came from.
type Result struct {
	Day   Day
	Entry Entry
}
