// Package diary exposes the journal store as tools.
//
// Tool Overview:
//
// add_diary: Append a free-form entry with optional tags at a given or current time
//
// search_diary: Search entries by keyword, tag and datetime range
//
// diary_summary: Summarise one day's entries, or count the last seven days
//
// Every tool reports store failures in its result text ("Error: ...") rather
// than as Go errors, so a caller can always show the result as-is. Only
// malformed argument XML produces an error.
//
// Usage Example:
//
//	store, _ := diary.NewFileStore(root)
//	registry, _ := tools.NewRegistry(
//		diarytools.NewAddDiaryTool(store),
//		diarytools.NewSearchDiaryTool(store),
//		diarytools.NewDiarySummaryTool(store),
//	)
package diary
