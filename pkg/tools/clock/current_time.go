// Package clock provides the get_current_time tool, which gives callers the
// reference points they need to turn relative expressions ("yesterday 3pm")
// into the absolute timestamps the other tools expect.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/entrhq/daily/pkg/tools"
)

// CurrentTimeTool reports the current time.
type CurrentTimeTool struct {
	now func() time.Time
	loc *time.Location
}

// NewCurrentTimeTool creates a tool that reads now in loc. A nil now uses
// time.Now and a nil loc uses time.Local.
func NewCurrentTimeTool(now func() time.Time, loc *time.Location) *CurrentTimeTool {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &CurrentTimeTool{now: now, loc: loc}
}

// Name returns the tool name.
func (t *CurrentTimeTool) Name() string {
	return "get_current_time"
}

// Description returns the tool description.
func (t *CurrentTimeTool) Description() string {
	return "Get the current date and time, to convert relative expressions like 'yesterday 3pm' into absolute datetimes."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *CurrentTimeTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

// Execute ignores its arguments.
func (t *CurrentTimeTool) Execute(_ context.Context, _ []byte) (string, map[string]interface{}, error) {
	now := t.now().In(t.loc)
	date := now.Format("2006-01-02")
	stamp := now.Format("2006-01-02 15:04:05")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	result := fmt.Sprintf("Current Time Information:\n"+
		"- Now: %s\n"+
		"- Date: %s (%s)\n"+
		"- Time: %s\n"+
		"- Yesterday: %s\n"+
		"\n"+
		"Use this to convert relative time expressions:\n"+
		"- 'just now' / '刚刚' → %s\n"+
		"- 'yesterday 3pm' / '昨天下午3点' → %s 15:00:00\n"+
		"- 'this morning 9am' / '今天早上9点' → %s 09:00:00",
		stamp, date, now.Weekday(), now.Format("15:04:05"), yesterday,
		stamp, yesterday, date)

	metadata := map[string]interface{}{
		"now":      stamp,
		"timezone": t.loc.String(),
	}
	return result, metadata, nil
}
