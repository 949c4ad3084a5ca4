package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

func testMessages() []parse.Message {
	return parse.ParseExport(
		"[1:00 PM]nickbg: hello there\n" +
			"[1:01 PM]Sato: raid tonight?\n" +
			"[1:02 PM]nickbg: sure, raid at nine\n",
	).Messages
}

func TestFilterMessages(t *testing.T) {
	msgs := testMessages()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty query keeps all", "", []int{1, 2, 3}},
		{"content match", "raid", []int{2, 3}},
		{"case insensitive", "RAID", []int{2, 3}},
		{"author match", "sato", []int{2}},
		{"all terms required", "nickbg raid", []int{3}},
		{"no match", "boss", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, m := range filterMessages(msgs, tt.query) {
				got = append(got, m.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModel_Navigation(t *testing.T) {
	var m tea.Model = newModel("import.txt", testMessages(), "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.(model).cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.(model).cursor)

	assert.NotEmpty(t, m.View())
	assert.Contains(t, m.(model).statusBar(), "import.txt | 3/3 messages")
}

func TestModel_EnterSelects(t *testing.T) {
	var m tea.Model = newModel("import.txt", testMessages(), "sato")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	fm := m.(model)
	require.NotNil(t, fm.selected)
	assert.Equal(t, 2, fm.selected.ID)
	assert.True(t, fm.quitting)
	assert.Equal(t, "", fm.View())
}

func TestModel_FilterResult(t *testing.T) {
	var m tea.Model = newModel("import.txt", testMessages(), "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	// stale results are ignored
	m, _ = m.Update(filterResultMsg{query: "old", results: nil})
	assert.Len(t, m.(model).results, 3)

	mm := m.(model)
	mm.query = "raid"
	m, _ = mm.Update(filterResultMsg{query: "raid", results: filterMessages(mm.msgs, "raid")})
	assert.Len(t, m.(model).results, 2)
	assert.Equal(t, 0, m.(model).cursor)
}

func TestModel_Preview(t *testing.T) {
	var m tea.Model = newModel("import.txt", testMessages(), "")
	m, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.NotNil(t, cmd)

	msg := cmd()
	rendered, ok := msg.(previewRenderedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, rendered.id)

	m, _ = m.Update(rendered)
	assert.Equal(t, 1, m.(model).previewID)
}

func TestModel_ClearFilter(t *testing.T) {
	var m tea.Model = newModel("import.txt", testMessages(), "sato")
	require.Len(t, m.(model).results, 1)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	assert.Equal(t, "", m.(model).query)

	m, _ = m.Update(cmd())
	assert.Len(t, m.(model).results, 3)
}
