package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

// linesPerItem is the number of terminal lines each message occupies.
const linesPerItem = 2

// renderList renders the left panel: filtered messages with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No messages")
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatMessageLine(r, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatMessageLine formats a message as two lines:
//
//	line 1: [>] #id author  timestamp
//	line 2:    content (dimmed)
func formatMessageLine(r parse.Message, width int, selected bool) []string {
	head := fmt.Sprintf("#%d %s %s",
		r.ID,
		styleAuthor.Render(r.AuthorID),
		lipgloss.NewStyle().Foreground(colorDim).Render(r.Timestamp),
	)
	if selected {
		head = styleListSelected.Render("> ") + head
	} else {
		head = "  " + head
	}

	content := strings.ReplaceAll(r.Content, "\t", " ")
	contentMax := max(width-4, 0)
	if runewidth.StringWidth(content) > contentMax {
		content = runewidth.Truncate(content, contentMax, "")
	}
	body := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(content)

	return []string{head, body}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
