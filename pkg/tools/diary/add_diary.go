package diary

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/entrhq/daily/pkg/diary"
	"github.com/entrhq/daily/pkg/tools"
)

// AddDiaryTool appends entries to the journal.
type AddDiaryTool struct {
	store diary.Store
}

// NewAddDiaryTool creates a new AddDiaryTool.
func NewAddDiaryTool(store diary.Store) *AddDiaryTool {
	return &AddDiaryTool{store: store}
}

// Name returns the tool name.
func (t *AddDiaryTool) Name() string {
	return "add_diary"
}

// Description returns the tool description.
func (t *AddDiaryTool) Description() string {
	return "Add a free-form diary entry with optional tags."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *AddDiaryTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"content": tools.StringProperty("Diary entry text"),
			"tags": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
				},
				"description": "Optional tags, without the leading '#'",
			},
			"datetime": tools.StringProperty("Entry time as YYYY-MM-DD HH:MM:SS. Defaults to now."),
		},
		[]string{"content"},
	)
}

// Execute appends one entry.
func (t *AddDiaryTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		Content  string   `xml:"content"`
		Tags     []string `xml:"tags>tag"`
		DateTime string   `xml:"datetime"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if strings.TrimSpace(input.Content) == "" {
		return "", nil, fmt.Errorf("missing required parameter: content")
	}

	message := diary.AppendEntry(ctx, t.store, diary.AppendInput{
		DateTime: input.DateTime,
		Content:  input.Content,
		Tags:     input.Tags,
	})

	metadata := map[string]interface{}{
		"added": strings.HasPrefix(message, "Diary entry added"),
		"tags":  input.Tags,
	}
	return message, metadata, nil
}
