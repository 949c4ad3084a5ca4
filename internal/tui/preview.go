package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chatimport/internal/parse"
	"github.com/Zuo-Peng/chatimport/internal/render"
)

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	id      int
	content string
	hitLine int
}

// loadPreviewCmd renders the transcript around message id.
func loadPreviewCmd(msgs []parse.Message, id int, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine := render.RenderMessages(msgs, render.Options{
			HitID:   id,
			Context: -1,
			Width:   width,
			Query:   query,
		})
		return previewRenderedMsg{id: id, content: content, hitLine: hitLine}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
