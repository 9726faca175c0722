package diary

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/daily/pkg/diary"
	"github.com/entrhq/daily/pkg/tools"
)

// SearchDiaryTool searches journal entries by keyword, tag and time range.
type SearchDiaryTool struct {
	store diary.Store
}

// NewSearchDiaryTool creates a new SearchDiaryTool.
func NewSearchDiaryTool(store diary.Store) *SearchDiaryTool {
	return &SearchDiaryTool{store: store}
}

// Name returns the tool name.
func (t *SearchDiaryTool) Name() string {
	return "search_diary"
}

// Description returns the tool description.
func (t *SearchDiaryTool) Description() string {
	return "Search diary entries by keyword, tag, or datetime range."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *SearchDiaryTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"keyword":        tools.StringProperty("Case-insensitive text to look for in entry content"),
			"tag":            tools.StringProperty("Only entries carrying this tag (case-insensitive)"),
			"start_datetime": tools.StringProperty("Range start, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS. Defaults to 30 days ago."),
			"end_datetime":   tools.StringProperty("Range end, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS. Defaults to now."),
		},
		nil, // every filter is optional
	)
}

// Execute runs the search and returns the formatted report.
func (t *SearchDiaryTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Keyword string   `xml:"keyword"`
		Tag     string   `xml:"tag"`
		Start   string   `xml:"start_datetime"`
		End     string   `xml:"end_datetime"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	report, count := diary.SearchReport(ctx, t.store, diary.SearchRequest{
		Keyword: input.Keyword,
		Tag:     input.Tag,
		Start:   input.Start,
		End:     input.End,
	})

	metadata := map[string]interface{}{
		"result_count": count,
	}
	return report, metadata, nil
}
