package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

// OpenMessage opens the export file in $EDITOR at the header line of the
// message with the given id.
func OpenMessage(res *parse.ParseResult, exportPath string, id int) error {
	msg := res.ByID(id)
	if msg == nil {
		return fmt.Errorf("message not found: %d", id)
	}

	if _, err := os.Stat(exportPath); err != nil {
		return fmt.Errorf("file not found: %s", exportPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	args := editorArgs(editor, exportPath, msg.Line)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorArgs(editor, filePath string, lineNum int) []string {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return []string{editor, fmt.Sprintf("+%d", lineNum), filePath}
	case strings.Contains(editor, "code"):
		return []string{editor, "--goto", filePath + ":" + strconv.Itoa(lineNum)}
	case strings.Contains(editor, "less"):
		return []string{editor, "+" + strconv.Itoa(lineNum), filePath}
	default:
		return []string{editor, filePath}
	}
}
