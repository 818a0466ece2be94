package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens a string to the given limit, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// maskSecret hides all but the last two runes of a secret.
func maskSecret(secret string) string {
	runes := []rune(secret)
	if len(runes) <= 2 {
		return strings.Repeat("•", len(runes))
	}
	return strings.Repeat("•", len(runes)-2) + string(runes[len(runes)-2:])
}
