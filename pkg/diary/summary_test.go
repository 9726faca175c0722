package diary

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaySummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := mustDay(t, "2024-01-20")

	assert.Equal(t, "📝 Diary: No entries", DaySummary(ctx, s, day))

	mustAppend(t, s, "2024-01-20", "07:00", "Woke up early and went for a long walk along the river before breakfast", "walk")
	for i := 0; i < 4; i++ {
		mustAppend(t, s, "2024-01-20", fmt.Sprintf("1%d:00", i), fmt.Sprintf("note %d", i))
	}

	got := DaySummary(ctx, s, day)
	want := "📝 Diary: 5 entries\n" +
		"  - 07:00 [walk] Woke up early and went for a long walk along the r...\n" +
		"  - 10:00 note 0\n" +
		"  - 11:00 note 1\n" +
		"  ... and 2 more entries"
	assert.Equal(t, want, got)
}

func TestWeekSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, "📝 Diary: 0 entries this week", WeekSummary(ctx, s))

	mustAppend(t, s, "2024-01-20", "09:00", "today")
	mustAppend(t, s, "2024-01-14", "09:00", "six days ago")
	mustAppend(t, s, "2024-01-14", "10:00", "six days ago again")
	mustAppend(t, s, "2024-01-13", "09:00", "too old")

	assert.Equal(t, "📝 Diary: 3 entries this week", WeekSummary(ctx, s))
}
