package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	salmonPink = lipgloss.Color("#FFB3BA") // headings
	mintGreen  = lipgloss.Color("#A8E6CF") // success
	skyBlue    = lipgloss.Color("#A0C4FF") // dates
	mutedGray  = lipgloss.Color("#6B7280") // secondary text
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)
)

// stylize colours a plain-text result line by line. The text itself is
// unchanged, so piping the output keeps the exact report format.
func stylize(text string, plain bool) string {
	if plain {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case line == "Diary Entries:" || line == "Current Time Information:":
			lines[i] = headerStyle.Render(line)
		case strings.HasPrefix(line, "Date: "):
			lines[i] = dateStyle.Render(line)
		case strings.HasPrefix(line, "Diary entry added"):
			lines[i] = successStyle.Render(line)
		case strings.HasPrefix(line, "Error: "), strings.HasPrefix(line, "Invalid "):
			lines[i] = errorStyle.Render(line)
		case strings.HasPrefix(line, "No matching"), strings.HasPrefix(line, "  ..."):
			lines[i] = mutedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
