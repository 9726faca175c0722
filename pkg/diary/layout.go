package diary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Layout maps days to file paths under a root directory.
type Layout struct {
	Root string

	// Ext is the file extension without the leading dot.
	Ext string

	// Flat puts every day file directly under Root instead of in
	// <YYYY>/<MM> subdirectories. Only used to read legacy stores.
	Flat bool
}

// Path returns the file that holds day.
func (l Layout) Path(day Day) string {
	name := day.String() + "." + l.Ext
	if l.Flat {
		return filepath.Join(l.Root, name)
	}
	return filepath.Join(l.Root, fmt.Sprintf("%04d", day.Year), fmt.Sprintf("%02d", int(day.Month)), name)
}

// Pattern returns the glob, over slash-separated paths relative to Root, that
// day files match.
func (l Layout) Pattern() string {
	const (
		year  = "[0-9][0-9][0-9][0-9]"
		month = "[0-9][0-9]"
	)
	name := year + "-" + month + "-[0-9][0-9]." + glob.QuoteMeta(l.Ext)
	if l.Flat {
		return name
	}
	return year + "/" + month + "/" + name
}

func (l Layout) compile() (glob.Glob, error) {
	g, err := glob.Compile(l.Pattern(), '/')
	if err != nil {
		return nil, fmt.Errorf("diary: compile layout pattern: %w", err)
	}
	return g, nil
}

// discover walks the tree and returns the days whose files exist within
// [from, to], newest first. A zero bound is open. Year and month directories
// that fall wholly outside the range are not descended into. A missing root
// yields no days.
func (l Layout) discover(match glob.Glob, from, to Day) ([]Day, error) {
	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var days []Day
	err := filepath.WalkDir(l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == l.Root {
				return err
			}
			// Unreadable subtrees are skipped rather than failing the scan.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(l.Root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !l.wantDir(rel, from, to) {
				return fs.SkipDir
			}
			return nil
		}
		// The pattern is the name filter; only matched paths are parsed.
		if !match.Match(rel) {
			return nil
		}
		day, ok := l.dayFromRel(rel)
		if !ok || !within(day, from, to) {
			return nil
		}
		days = append(days, day)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("diary: scan %s: %w", l.Root, err)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Compare(days[j]) > 0 })
	return days, nil
}

// wantDir reports whether a directory may contain day files in range.
func (l Layout) wantDir(rel string, from, to Day) bool {
	if l.Flat {
		return false
	}
	parts := strings.Split(rel, "/")
	switch len(parts) {
	case 1:
		year, ok := atoiN(parts[0], 4)
		if !ok {
			return false
		}
		return (from.IsZero() || year >= from.Year) && (to.IsZero() || year <= to.Year)
	case 2:
		year, ok := atoiN(parts[0], 4)
		month, okm := atoiN(parts[1], 2)
		if !ok || !okm {
			return false
		}
		monthStart := Day{Year: year, Month: time.Month(month), Dom: 1}
		monthEnd := Day{Year: year, Month: time.Month(month), Dom: 31}
		return (from.IsZero() || monthEnd.Compare(from) >= 0) && (to.IsZero() || monthStart.Compare(to) <= 0)
	default:
		return false
	}
}

// dayFromRel reads the day from a path that matched the layout pattern. The
// pattern fixes the name's shape; this checks that the date exists and that
// nested files sit in the directories their name implies.
func (l Layout) dayFromRel(rel string) (Day, bool) {
	base := path.Base(rel)
	day, err := ParseDay(base[:len(dayLayout)])
	if err != nil {
		return Day{}, false
	}
	if l.Flat {
		return day, true
	}
	want := fmt.Sprintf("%04d/%02d/%s", day.Year, int(day.Month), base)
	return day, rel == want
}

func within(day, from, to Day) bool {
	return (from.IsZero() || day.Compare(from) >= 0) && (to.IsZero() || day.Compare(to) <= 0)
}

func atoiN(s string, n int) (int, bool) {
	if len(s) != n || !digits(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}
