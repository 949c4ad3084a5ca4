// Package channel shapes parsed messages into the channel JSON document
// consumed by the web app and writes it to disk.
package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

// Message is the serialized form of a parsed message.
type Message struct {
	ID        string           `json:"id"`
	AuthorID  string           `json:"authorId"`
	Content   string           `json:"content"`
	Timestamp string           `json:"timestamp"`
	Reactions []parse.Reaction `json:"reactions"`
}

// Channel is the root JSON structure written to disk.
type Channel struct {
	Messages []Message `json:"messages"`
}

// FromMessages wraps messages in a Channel, keeping their order and
// converting ids to strings.
func FromMessages(msgs []parse.Message) Channel {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		reactions := m.Reactions
		if reactions == nil {
			reactions = []parse.Reaction{}
		}
		out = append(out, Message{
			ID:        strconv.Itoa(m.ID),
			AuthorID:  m.AuthorID,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Reactions: reactions,
		})
	}
	return Channel{Messages: out}
}

// Marshal encodes the channel as indented JSON without HTML escaping.
func Marshal(ch Channel) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the channel to path, creating parent directories. The file is
// replaced atomically so an interrupted run never leaves partial output.
func Write(path string, ch Channel) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := Marshal(ch)
	if err != nil {
		return fmt.Errorf("marshal channel: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Read loads a channel document previously written by Write.
func Read(path string) (Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Channel{}, fmt.Errorf("read channel file: %w", err)
	}

	var ch Channel
	if err := json.Unmarshal(data, &ch); err != nil {
		return Channel{}, fmt.Errorf("parse channel file: %w", err)
	}
	return ch, nil
}
