package open

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

func TestEditorArgs(t *testing.T) {
	tests := []struct {
		editor string
		want   []string
	}{
		{"nvim", []string{"nvim", "+12", "import.txt"}},
		{"/usr/bin/vim", []string{"/usr/bin/vim", "+12", "import.txt"}},
		{"code", []string{"code", "--goto", "import.txt:12"}},
		{"less", []string{"less", "+12", "import.txt"}},
		{"nano", []string{"nano", "import.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			assert.Equal(t, tt.want, editorArgs(tt.editor, "import.txt", 12))
		})
	}
}

func TestOpenMessage_Errors(t *testing.T) {
	res := parse.ParseExport("[1:00 PM]a: one")

	err := OpenMessage(res, "import.txt", 9)
	assert.ErrorContains(t, err, "message not found")

	err = OpenMessage(res, filepath.Join(t.TempDir(), "missing.txt"), 1)
	assert.ErrorContains(t, err, "file not found")
}
