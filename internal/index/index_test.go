package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "messages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRebuild(t *testing.T) {
	db := openTestDB(t)

	res := parse.ParseExport("[1:00 PM]sato: hello world\n[1:01 PM]Nick BG: goodbye\nstray]\n")
	stats, err := Rebuild(db, "import.txt", res)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Indexed)
	assert.Equal(t, 0, stats.Removed)

	n, err := db.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	fts, err := db.FTSCount()
	require.NoError(t, err)
	assert.Equal(t, n, fts)

	var authorID, author string
	var line int
	err = db.Raw().QueryRow("SELECT author_id, author, line_number FROM messages WHERE id = 2").
		Scan(&authorID, &author, &line)
	require.NoError(t, err)
	assert.Equal(t, "nick-bg", authorID)
	assert.Equal(t, "Nick BG", author)
	assert.Equal(t, 2, line)

	src, err := db.Meta("source")
	require.NoError(t, err)
	assert.Equal(t, "import.txt", src)

	authors, err := db.AuthorCounts()
	require.NoError(t, err)
	assert.Equal(t, []AuthorRow{{"nick-bg", 1}, {"sato", 1}}, authors)
}

func TestRebuild_ReplacesPreviousRun(t *testing.T) {
	db := openTestDB(t)

	_, err := Rebuild(db, "a.txt", parse.ParseExport("[1:00 PM]a: one\n[1:01 PM]b: two"))
	require.NoError(t, err)

	stats, err := Rebuild(db, "b.txt", parse.ParseExport("[2:00 PM]c: three"))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Removed)
	assert.Equal(t, 1, stats.Indexed)

	n, err := db.MessageCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	fts, err := db.FTSCount()
	require.NoError(t, err)
	assert.Equal(t, 1, fts)

	authors, err := db.AuthorCounts()
	require.NoError(t, err)
	assert.Equal(t, []AuthorRow{{"c", 1}}, authors)

	val, err := db.Meta("nope")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}
