package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatimport/internal/index"
	"github.com/Zuo-Peng/chatimport/internal/parse"
)

const export = `[8:41 PM]nickbg: hello there
[8:42 PM]
OP
 Sato: welcome back, the raid starts soon
[8:43 PM]nickbg: which raid?
[8:44 PM]sato: 你好 世界
`

func seededDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = index.Rebuild(db, "import.txt", parse.ParseExport(export))
	require.NoError(t, err)
	return db
}

func TestSearch_FTS(t *testing.T) {
	db := seededDB(t)

	results, err := Search(db, Options{Query: "raid"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []int{results[0].ID, results[1].ID}
	assert.ElementsMatch(t, []int{2, 3}, ids)
	for _, r := range results {
		assert.Contains(t, r.Snippet, ">>>raid<<<")
	}
}

func TestSearch_AuthorFilter(t *testing.T) {
	db := seededDB(t)

	results, err := Search(db, Options{Query: "raid", Author: "sato"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].ID)
	assert.Equal(t, "8:42 PM", results[0].Timestamp)
	assert.Equal(t, 2, results[0].Line)
}

func TestSearch_CJK(t *testing.T) {
	db := seededDB(t)

	results, err := Search(db, Options{Query: "世界"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].ID)
	assert.Equal(t, "你好 >>>世界<<<", results[0].Snippet)
}

func TestSearch_CJKWildcardsAreLiteral(t *testing.T) {
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = index.Rebuild(db, "import.txt", parse.ParseExport(
		"[1:00 PM]a: 你好_世界\n[1:01 PM]b: 你好x世界\n[1:02 PM]c: 你好%世界\n",
	))
	require.NoError(t, err)

	results, err := Search(db, Options{Query: "好_世"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)

	results, err = Search(db, Options{Query: "好%世"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].ID)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}

func TestSearch_EmptyQuery(t *testing.T) {
	db := seededDB(t)

	_, err := Search(db, Options{Query: "  "})
	assert.Error(t, err)
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "...lo >>>there<<< fr...", makeSnippet("hello there friend", "there", 3))
	assert.Equal(t, "abcdef...", makeSnippet("abcdefghij", "zzz", 3))
	assert.Equal(t, "short", makeSnippet("short", "zzz", 3))
}
