package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignFooter lays out a single footer line with `left` at the start and
// `right` right-aligned within width columns. Widths are measured with
// lipgloss so styled segments count their visible cells rather than their
// escape codes. When the line is too tight a single space keeps the tokens
// apart.
func AlignFooter(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
