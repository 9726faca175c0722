package diary

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// MigrationReport summarises a Migrate run.
type MigrationReport struct {
	Days    int // day files read from the source
	Entries int // entries written to the target
	Skipped []Day
	Failed  int // entries the target rejected
}

// MigrateOptions controls Migrate.
type MigrateOptions struct {
	// Overwrite appends into target days that already hold entries. Without
	// it such days are skipped, which makes re-running a migration safe.
	Overwrite bool
}

// Migrate copies every entry from one store into another, oldest day first,
// through the target's normal Append path. Entries with unreadable clocks
// and entries the target rejects are counted as failures; the run continues
// and the collected errors are returned together.
func Migrate(ctx context.Context, from, to Store, opts MigrateOptions) (MigrationReport, error) {
	var report MigrationReport

	days, err := from.Days(ctx, Day{}, Day{})
	if err != nil {
		return report, err
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Compare(days[j]) < 0 })

	var errs []error
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !opts.Overwrite {
			existing, err := to.Load(ctx, day)
			if err != nil {
				return report, err
			}
			if len(existing.Entries) > 0 {
				report.Skipped = append(report.Skipped, day)
				continue
			}
		}

		doc, err := from.Load(ctx, day)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		report.Days++
		for _, e := range doc.Entries {
			if !e.Valid {
				report.Failed++
				errs = append(errs, fmt.Errorf("diary: %s: unreadable time %q", day, e.Clock))
				continue
			}
			_, err := to.Append(ctx, AppendRequest{
				Day:     day,
				Clock:   e.Time.Format(clockLayout),
				Content: e.Content,
				Tags:    e.Tags,
			})
			if err != nil {
				report.Failed++
				errs = append(errs, fmt.Errorf("diary: %s %s: %w", day, e.Clock, err))
				continue
			}
			report.Entries++
		}
	}
	return report, errors.Join(errs...)
}
