package channel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

func TestFromMessages(t *testing.T) {
	msgs := []parse.Message{
		{ID: 1, AuthorID: "nickbg", Content: "hello there", Timestamp: "8:41 PM", Reactions: []parse.Reaction{}, Line: 4},
		{ID: 2, AuthorID: "sato", Content: "welcome back", Timestamp: "9:02 PM"},
	}

	ch := FromMessages(msgs)

	require.Len(t, ch.Messages, 2)
	assert.Equal(t, Message{
		ID:        "1",
		AuthorID:  "nickbg",
		Content:   "hello there",
		Timestamp: "8:41 PM",
		Reactions: []parse.Reaction{},
	}, ch.Messages[0])
	assert.Equal(t, "2", ch.Messages[1].ID)
	assert.NotNil(t, ch.Messages[1].Reactions)
}

func TestMarshal(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		data, err := Marshal(FromMessages(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"messages": []}`, string(data))
	})

	t.Run("fields and escaping", func(t *testing.T) {
		data, err := Marshal(FromMessages([]parse.Message{
			{ID: 7, AuthorID: "zoë", Content: "a <b> & c", Timestamp: "1:00 PM"},
		}))
		require.NoError(t, err)

		want := `{
  "messages": [
    {
      "id": "7",
      "authorId": "zoë",
      "content": "a <b> & c",
      "timestamp": "1:00 PM",
      "reactions": []
    }
  ]
}
`
		assert.Equal(t, want, string(data))
	})
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "data", "channels", "parsed-discord.json")
	ch := FromMessages([]parse.Message{{ID: 1, AuthorID: "a", Content: "one", Timestamp: "1:00 PM"}})

	require.NoError(t, Write(path, ch))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, ch, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	// a second run overwrites
	require.NoError(t, Write(path, FromMessages(nil)))
	got, err = Read(path)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestWrite_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := Write(filepath.Join(blocker, "out.json"), FromMessages(nil))
	assert.Error(t, err)
}
