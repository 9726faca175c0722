package diary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/daily/pkg/logging"
	"github.com/gobwas/glob"
)

// Store is the journal storage contract used by the report, summary,
// migration and tool layers.
type Store interface {
	// Append adds one entry to the end of its day file.
	Append(ctx context.Context, req AppendRequest) (Entry, error)

	// Load reads one day. A day with no file yields an empty document.
	Load(ctx context.Context, day Day) (*Document, error)

	// Days lists days that have a file within [from, to], newest first.
	// Zero bounds are open.
	Days(ctx context.Context, from, to Day) ([]Day, error)

	// Search returns matching entries, newest day first and in file order
	// within a day.
	Search(ctx context.Context, q Query) ([]Result, error)

	// Location is the time zone entries are interpreted in.
	Location() *time.Location

	// Now returns the current time in Location.
	Now() time.Time
}

// FileStore is a Store backed by one file per day under a root directory.
// It is safe for concurrent use within one process.
type FileStore struct {
	layout Layout
	codec  Codec
	match  glob.Glob
	loc    *time.Location
	now    func() time.Time
	logger *logging.Logger
	locks  pathLocks

	flat bool
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithCodec selects the file format. The default is MarkdownCodec.
func WithCodec(c Codec) Option {
	return func(s *FileStore) { s.codec = c }
}

// WithFlatLayout reads and writes <root>/<YYYY-MM-DD>.<ext> instead of the
// nested year/month tree.
func WithFlatLayout() Option {
	return func(s *FileStore) { s.flat = true }
}

// WithLocation sets the zone that clocks and day boundaries are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *FileStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for skipped files and writes.
func WithLogger(l *logging.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore opens a store rooted at root. The directory is created on the
// first append, not here.
func NewFileStore(root string, opts ...Option) (*FileStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("%w: diary root is empty", ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("diary: abs root: %w", err)
	}

	s := &FileStore{
		codec:  MarkdownCodec{},
		loc:    time.Local,
		now:    time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.layout = Layout{Root: abs, Ext: s.codec.Ext(), Flat: s.flat}
	if s.match, err = s.layout.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the absolute root directory.
func (s *FileStore) Root() string { return s.layout.Root }

// Layout returns the path layout in use.
func (s *FileStore) Layout() Layout { return s.layout }

// Codec returns the file format in use.
func (s *FileStore) Codec() Codec { return s.codec }

func (s *FileStore) Location() *time.Location { return s.loc }

func (s *FileStore) Now() time.Time { return s.now().In(s.loc) }

// Append validates req, then rewrites the day file with the new entry at the
// end and a recomputed frontmatter tag union. Validation failures wrap
// ErrInvalidInput and leave the filesystem untouched.
func (s *FileStore) Append(ctx context.Context, req AppendRequest) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	if req.Day.IsZero() {
		return Entry{}, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	clock, hour, minute, err := normalizeClock(req.Clock)
	if err != nil {
		return Entry{}, err
	}
	content, err := validateContent(req.Content)
	if err != nil {
		return Entry{}, err
	}
	tags, err := normalizeTags(req.Tags)
	if err != nil {
		return Entry{}, err
	}

	path := s.layout.Path(req.Day)
	unlock := s.locks.lock(path)
	defer unlock()

	doc, err := s.read(path, req.Day)
	if err != nil {
		return Entry{}, err
	}

	now := s.Now()
	entry := Entry{
		Time:    req.Day.At(hour, minute, 0, s.loc),
		Clock:   clock,
		Content: content,
		Tags:    tags,
		Valid:   true,
		Created: now,
	}
	if entry, err = s.codec.AppendEntry(doc, entry); err != nil {
		return Entry{}, err
	}
	doc.Meta = Meta{
		Date:       req.Day.String(),
		ModifiedAt: now.Format(stampLayout),
		Tags:       doc.Tags(),
	}

	b, err := s.codec.Encode(doc)
	if err != nil {
		return Entry{}, err
	}
	if err := writeAtomic(path, b); err != nil {
		return Entry{}, err
	}
	s.logger.Infof("appended entry at %s %s to %s (%d tags)", req.Day, clock, path, len(entry.Tags))
	return entry, nil
}

// Load reads one day file.
func (s *FileStore) Load(ctx context.Context, day Day) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read(s.layout.Path(day), day)
}

func (s *FileStore) Days(ctx context.Context, from, to Day) ([]Day, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.layout.discover(s.match, from, to)
}

// Search scans every day file in the query range. Files that cannot be read
// or decoded are logged and skipped.
func (s *FileStore) Search(ctx context.Context, q Query) ([]Result, error) {
	if q.End.Before(q.Start) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidInput,
			q.Start.Format(stampLayout), q.End.Format(stampLayout))
	}
	days, err := s.Days(ctx, DayOf(q.Start.In(s.loc)), DayOf(q.End.In(s.loc)))
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := s.read(s.layout.Path(day), day)
		if err != nil {
			s.logger.Warnf("skipping unreadable diary file for %s: %v", day, err)
			continue
		}
		for _, e := range doc.Entries {
			if q.matches(e) {
				results = append(results, Result{Day: day, Entry: e})
			}
		}
	}
	s.logger.Infof("search scanned %d day files, %d matches", len(days), len(results))
	return results, nil
}

func (q Query) matches(e Entry) bool {
	if !e.Valid || e.Time.Before(q.Start) || e.Time.After(q.End) {
		return false
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" &&
		!strings.Contains(strings.ToLower(e.Content), strings.ToLower(kw)) {
		return false
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" && !e.HasTag(tag) {
		return false
	}
	return true
}

func (s *FileStore) read(path string, day Day) (*Document, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Document{Day: day, Meta: Meta{Date: day.String()}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("diary: read %s: %w", path, err)
	}
	return s.codec.Decode(day, b, s.loc)
}

// normalizeClock accepts HH:MM or HH:MM:SS and returns the stored HH:MM form.
func normalizeClock(clock string) (string, int, int, error) {
	clock = strings.TrimSpace(clock)
	if !clockShaped(clock) {
		return "", 0, 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidInput, clock)
	}
	h, m, _, ok := parseClock(clock)
	if !ok {
		return "", 0, 0, fmt.Errorf("%w: time %q is out of range", ErrInvalidInput, clock)
	}
	return fmt.Sprintf("%02d:%02d", h, m), h, m, nil
}

// validateContent trims content and rejects text that would not survive a
// round trip through the markdown format.
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return "", fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	for _, line := range strings.Split(content, "\n") {
		if _, ok := headerClock(line); ok {
			return "", fmt.Errorf("%w: content line %q looks like an entry header", ErrInvalidInput, strings.TrimSpace(line))
		}
	}
	return content, nil
}

// writeAtomic replaces path with b through a temporary file in the same
// directory, so readers never observe a partial file.
func writeAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("diary: create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("diary: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("diary: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("diary: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("diary: atomic rename %s: %w", path, err)
	}
	return nil
}
