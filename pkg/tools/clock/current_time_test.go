package clock

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCurrentTimeTool_Name(t *testing.T) {
	tool := NewCurrentTimeTool(nil, nil)
	if got := tool.Name(); got != "get_current_time" {
		t.Errorf("Name() = %v, want get_current_time", got)
	}
}

func TestCurrentTimeTool_Execute(t *testing.T) {
	fixed := time.Date(2024, time.March, 1, 8, 5, 9, 0, time.UTC)
	tool := NewCurrentTimeTool(func() time.Time { return fixed }, time.UTC)

	result, metadata, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"- Now: 2024-03-01 08:05:09",
		"- Date: 2024-03-01 (Friday)",
		"- Time: 08:05:09",
		"- Yesterday: 2024-02-29",
		"→ 2024-02-29 15:00:00",
		"→ 2024-03-01 09:00:00",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("result missing %q:\n%s", want, result)
		}
	}

	if metadata["timezone"] != "UTC" {
		t.Errorf("timezone metadata = %v", metadata["timezone"])
	}
}
