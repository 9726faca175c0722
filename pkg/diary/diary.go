// Package diary implements a file-backed journal with one file per calendar day.
//
// Day files live at <root>/<YYYY>/<MM>/<YYYY-MM-DD>.<ext>. The default codec
// writes markdown with a small frontmatter block:
//
//	---
//	date: 2024-01-15
//	modification_date: 2024-01-15 20:01:07
//	tags: [evening, morning]
//	---
//
//	## 08:00
//
//	Morning entry
//
//	#morning
//
// Appends are read-modify-write: the whole day file is loaded, the new section
// is added at the end (never reordered, even when backdated), the frontmatter
// tag union is recomputed from every entry, and the file is replaced through a
// temporary file and rename.
//
// Searches rescan the directory tree on every call. There is no index or cache.
//
// The store assumes a single writer per day file. An in-process lock serialises
// appends to the same day; separate processes appending to the same day race
// and the last rename wins.
package diary
