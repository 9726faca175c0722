package diary

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/entrhq/daily/pkg/diary"
	"github.com/entrhq/daily/pkg/tools"
)

// DiarySummaryTool renders the daily or weekly journal digest.
type DiarySummaryTool struct {
	store diary.Store
}

// NewDiarySummaryTool creates a new DiarySummaryTool.
func NewDiarySummaryTool(store diary.Store) *DiarySummaryTool {
	return &DiarySummaryTool{store: store}
}

// Name returns the tool name.
func (t *DiarySummaryTool) Name() string {
	return "diary_summary"
}

// Description returns the tool description.
func (t *DiarySummaryTool) Description() string {
	return "Summarise diary entries for one day (default today), or count entries over the last seven days."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *DiarySummaryTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"date": tools.StringProperty("Day to summarise as YYYY-MM-DD. Defaults to today."),
			"period": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"day", "week"},
				"description": "day (default) or week",
			},
		},
		nil,
	)
}

// Execute renders the requested summary.
func (t *DiarySummaryTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Date    string   `xml:"date"`
		Period  string   `xml:"period"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input.Period)) {
	case "week":
		return diary.WeekSummary(ctx, t.store), map[string]interface{}{"period": "week"}, nil
	case "", "day":
	default:
		return fmt.Sprintf("Invalid period: %s. Use day or week", input.Period), nil, nil
	}

	day := diary.DayOf(t.store.Now())
	if raw := strings.TrimSpace(input.Date); raw != "" {
		parsed, err := diary.ParseDay(raw)
		if err != nil {
			return fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", input.Date), nil, nil
		}
		day = parsed
	}
	return diary.DaySummary(ctx, t.store, day), map[string]interface{}{"period": "day", "date": day.String()}, nil
}
