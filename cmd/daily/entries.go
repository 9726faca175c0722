package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/daily/pkg/diary"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		tags []string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Append an entry to the diary",
		Long: `Append an entry to the diary. The content is taken from the arguments,
or from stdin when no arguments are given.`,
		Example: `  daily add "Finished the quarterly report" --tag work
  daily add --at "2024-01-15 19:30:00" -t food -t family < dinner.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = string(b)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			a.print(cmd, diary.AppendEntry(cmd.Context(), store, diary.AppendInput{
				DateTime: at,
				Content:  content,
				Tags:     tags,
			}))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag for the entry (repeatable)")
	cmd.Flags().StringVar(&at, "at", "", "entry time as YYYY-MM-DD HH:MM:SS (default now)")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var req diary.SearchRequest

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search diary entries by keyword, tag and time range",
		Long: `Search diary entries. Without --start the last 30 days are searched.
A date-only --start begins at 00:00:00 and a date-only --end runs to 23:59:59.`,
		Example: `  daily search --tag work
  daily search -k dinner --start 2024-01-01 --end 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			a.print(cmd, diary.SearchEntries(cmd.Context(), store, req))
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Keyword, "keyword", "k", "", "case-insensitive substring of the content")
	cmd.Flags().StringVarP(&req.Tag, "tag", "t", "", "tag the entry must carry")
	cmd.Flags().StringVar(&req.Start, "start", "", "range start, YYYY-MM-DD[ HH:MM[:SS]]")
	cmd.Flags().StringVar(&req.End, "end", "", "range end, YYYY-MM-DD[ HH:MM[:SS]]")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var (
		date string
		week bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise one day or the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if week {
				a.print(cmd, diary.WeekSummary(cmd.Context(), store))
				return nil
			}

			day := diary.DayOf(store.Now())
			if date != "" {
				if day, err = diary.ParseDay(date); err != nil {
					return fmt.Errorf("invalid date format: %s. Use YYYY-MM-DD", date)
				}
			}
			a.print(cmd, diary.DaySummary(cmd.Context(), store, day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to summarise, YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&week, "week", false, "summarise today and the six days before")
	cmd.MarkFlagsMutuallyExclusive("date", "week")
	return cmd
}
