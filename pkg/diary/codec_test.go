package diary

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyJSON = `[
  {"content": "Met Ana for coffee", "datetime": "2024-01-10 09:15:00", "created_at": "2024-01-10T09:15:02.123456", "tags": ["Social", "coffee"]},
  {"content": "older record", "time": "18:40:00"},
  {"content": "   "},
  {"content": "bad stamp", "datetime": "yesterday"}
]`

func TestCodecByName(t *testing.T) {
	for name, want := range map[string]string{"": "markdown", "Markdown": "markdown", "md": "markdown", "json": "json"} {
		c, err := CodecByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, c.Name())
	}

	_, err := CodecByName("xml")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJSONCodecDecode(t *testing.T) {
	day := Day{Year: 2024, Month: time.January, Dom: 10}
	doc, err := JSONCodec{}.Decode(day, []byte(legacyJSON), time.UTC)
	require.NoError(t, err)
	require.Len(t, doc.Entries, 3)

	first := doc.Entries[0]
	assert.True(t, first.Valid)
	assert.Equal(t, "09:15:00", first.Clock)
	assert.Equal(t, []string{"Social", "coffee"}, first.Tags)
	assert.Equal(t, 2024, first.Created.Year())

	second := doc.Entries[1]
	assert.True(t, second.Valid)
	assert.True(t, second.Time.Equal(time.Date(2024, 1, 10, 18, 40, 0, 0, time.UTC)))

	assert.False(t, doc.Entries[2].Valid)
	assert.Equal(t, []string{"coffee", "Social"}, doc.Meta.Tags)
}

func TestJSONCodecRejectsCorruptFile(t *testing.T) {
	_, err := JSONCodec{}.Decode(Day{Year: 2024, Month: time.January, Dom: 10}, []byte("{not json"), time.UTC)
	assert.Error(t, err)
}

func TestJSONStoreAppend(t *testing.T) {
	s := newTestStore(t, WithCodec(JSONCodec{}))
	mustAppend(t, s, "2024-01-15", "08:30", "café <b>&</b> 日記", "Food")
	mustAppend(t, s, "2024-01-15", "09:00", "second")

	raw, err := os.ReadFile(filepath.Join(s.Root(), "2024", "01", "2024-01-15.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "café <b>&</b> 日記", "non-ASCII and HTML characters are written verbatim")

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-15 08:30:00", records[0]["datetime"])
	assert.Equal(t, "2024-01-20T12:00:00", records[0]["created_at"])
	assert.NotContains(t, records[1], "tags")
}

func TestSearchSkipsCorruptFiles(t *testing.T) {
	s := newTestStore(t, WithCodec(JSONCodec{}))
	mustAppend(t, s, "2024-01-15", "08:30", "fine")
	writeDayFile(t, s, "2024-01-16", "{oops")

	results, err := s.Search(context.Background(), wholeRange())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "fine", results[0].Entry.Content)

	_, err = s.Append(context.Background(), AppendRequest{Day: mustDay(t, "2024-01-16"), Clock: "10:00", Content: "x"})
	assert.Error(t, err, "appending must not overwrite a file it cannot decode")
	raw, readErr := os.ReadFile(s.Layout().Path(mustDay(t, "2024-01-16")))
	require.NoError(t, readErr)
	assert.Equal(t, "{oops", string(raw))
}

func TestFlatLayout(t *testing.T) {
	s := newTestStore(t, WithCodec(JSONCodec{}), WithFlatLayout())
	day := mustDay(t, "2024-01-10")
	assert.Equal(t, filepath.Join(s.Root(), "2024-01-10.json"), s.Layout().Path(day))

	require.NoError(t, os.WriteFile(s.Layout().Path(day), []byte(legacyJSON), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root(), "2024", "01"), 0o750))

	days, err := s.Days(context.Background(), Day{}, Day{})
	require.NoError(t, err)
	assert.Equal(t, []Day{day}, days)
}

func TestMigrateJSONToMarkdown(t *testing.T) {
	ctx := context.Background()
	legacy := newTestStore(t, WithCodec(JSONCodec{}), WithFlatLayout())
	require.NoError(t, os.WriteFile(legacy.Layout().Path(mustDay(t, "2024-01-10")), []byte(legacyJSON), 0o600))
	mustAppend(t, legacy, "2024-01-12", "07:00", "run #not-a-tag-in-json", "Sport")

	target := newTestStore(t)
	report, err := Migrate(ctx, legacy, target, MigrateOptions{})
	assert.Error(t, err, "the record with an unreadable stamp is reported")
	assert.Equal(t, 2, report.Days)
	assert.Equal(t, 3, report.Entries)
	assert.Equal(t, 1, report.Failed)

	q := wholeRange()
	q.Tag = "social"
	results, err := target.Search(ctx, q)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Met Ana for coffee", results[0].Entry.Content)
	assert.Equal(t, "09:15", results[0].Entry.Clock)

	// A second run skips days that already have entries.
	report, err = Migrate(ctx, legacy, target, MigrateOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Entries)
	assert.Len(t, report.Skipped, 2)
}
