package diary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Codec converts between a day file's bytes and a Document.
type Codec interface {
	// Name identifies the codec in configuration ("markdown", "json").
	Name() string

	// Ext is the file extension, without the dot.
	Ext() string

	// Decode parses raw file content. Empty input yields an empty document.
	Decode(day Day, raw []byte, loc *time.Location) (*Document, error)

	// AppendEntry adds entry to the end of doc and returns it as a later
	// Decode will read it back.
	AppendEntry(doc *Document, entry Entry) (Entry, error)

	// Encode renders doc, including doc.Meta, to file content.
	Encode(doc *Document) ([]byte, error)
}

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "markdown", "md":
		return MarkdownCodec{}, nil
	case "json":
		return JSONCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown diary format %q (must be markdown or json)", ErrInvalidInput, name)
	}
}

// MarkdownCodec stores a day as frontmatter followed by "## HH:MM" sections
// with inline #tag markers.
type MarkdownCodec struct{}

func (MarkdownCodec) Name() string { return "markdown" }
func (MarkdownCodec) Ext() string  { return "md" }

func (MarkdownCodec) Decode(day Day, raw []byte, loc *time.Location) (*Document, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	doc := &Document{Day: day}

	block, body, ok := splitFrontmatter(text)
	if ok {
		doc.Meta = decodeFrontmatter(block)
	}
	doc.Body = body
	doc.Entries = parseBody(day, body, loc)
	adoptOrphanTags(doc.Meta, doc.Entries)
	return doc, nil
}

// AppendEntry lifts inline #tag markers out of the content into the entry's
// tag line, so the entry's tags match what the parser reads back.
func (MarkdownCodec) AppendEntry(doc *Document, entry Entry) (Entry, error) {
	content, inline := stripTags(entry.Content)
	if content == "" {
		return Entry{}, fmt.Errorf("%w: content is required besides tags", ErrInvalidInput)
	}
	entry.Content = content
	entry.Tags = dedupeTags(append(append([]string(nil), entry.Tags...), inline...))

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(doc.Body, " \t\r\n"))
	sb.WriteString("\n\n## ")
	sb.WriteString(entry.Clock)
	sb.WriteString("\n\n")
	sb.WriteString(entry.Content)
	if len(entry.Tags) > 0 {
		sb.WriteString("\n\n#")
		sb.WriteString(strings.Join(entry.Tags, " #"))
	}
	doc.Body = sb.String()
	doc.Entries = append(doc.Entries, entry)
	return entry, nil
}

func (MarkdownCodec) Encode(doc *Document) ([]byte, error) {
	body := doc.Body
	if !strings.HasPrefix(body, "\n") && body != "" {
		body = "\n\n" + body
	}
	return []byte(encodeFrontmatter(doc.Meta) + body), nil
}

// JSONCodec stores a day as a JSON array of records. It reads files written
// by earlier versions of the service, including ones that only carry a
// "time" field instead of a full "datetime".
type JSONCodec struct{}

type jsonRecord struct {
	Content   string   `json:"content"`
	Datetime  string   `json:"datetime,omitempty"`
	Time      string   `json:"time,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

const createdAtLayout = "2006-01-02T15:04:05.999999"

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Ext() string  { return "json" }

func (JSONCodec) Decode(day Day, raw []byte, loc *time.Location) (*Document, error) {
	doc := &Document{Day: day, Meta: Meta{Date: day.String()}}
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}

	var records []jsonRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("diary: decode %s: %w", day, err)
	}
	for _, r := range records {
		content := strings.TrimSpace(r.Content)
		if content == "" {
			continue
		}
		entry := Entry{Content: content, Tags: dedupeTags(trimAll(r.Tags))}
		switch {
		case r.Datetime != "":
			if t, err := time.ParseInLocation(stampLayout, r.Datetime, loc); err == nil {
				entry.Time, entry.Clock, entry.Valid = t, t.Format(clockSecLayout), true
			} else {
				entry.Clock = r.Datetime
			}
		case r.Time != "":
			entry.Clock = r.Time
			if h, m, s, ok := parseClock(r.Time); ok {
				entry.Time, entry.Valid = day.At(h, m, s, loc), true
			}
		}
		if r.CreatedAt != "" {
			if t, err := time.ParseInLocation(createdAtLayout, r.CreatedAt, loc); err == nil {
				entry.Created = t
			}
		}
		doc.Entries = append(doc.Entries, entry)
	}
	doc.Meta.Tags = doc.Tags()
	return doc, nil
}

// AppendEntry stores content verbatim; JSON records carry tags separately.
func (JSONCodec) AppendEntry(doc *Document, entry Entry) (Entry, error) {
	doc.Entries = append(doc.Entries, entry)
	return entry, nil
}

func (JSONCodec) Encode(doc *Document) ([]byte, error) {
	records := make([]jsonRecord, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		r := jsonRecord{Content: e.Content, Tags: e.Tags}
		if e.Valid {
			r.Datetime = e.Time.Format(stampLayout)
		} else {
			r.Time = e.Clock
		}
		if !e.Created.IsZero() {
			r.CreatedAt = e.Created.Format(createdAtLayout)
		}
		records = append(records, r)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("diary: encode %s: %w", doc.Day, err)
	}
	return buf.Bytes(), nil
}

func trimAll(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimPrefix(strings.TrimSpace(t), "#"); t != "" {
			out = append(out, t)
		}
	}
	return out
}
