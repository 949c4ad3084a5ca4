package index

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

type Stats struct {
	Indexed int
	Removed int
	Dropped int
}

func (s Stats) String() string {
	return fmt.Sprintf("indexed=%d removed=%d dropped=%d", s.Indexed, s.Removed, s.Dropped)
}

// Rebuild replaces the whole index with the messages of res. Every import
// starts from scratch; nothing is merged with earlier runs.
func Rebuild(db *DB, source string, res *parse.ParseResult) (Stats, error) {
	stats := Stats{Dropped: len(res.Warnings)}

	tx, err := db.Raw().Begin()
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	r, err := tx.Exec("DELETE FROM messages")
	if err != nil {
		return stats, fmt.Errorf("clear messages: %w", err)
	}
	if n, err := r.RowsAffected(); err == nil {
		stats.Removed = int(n)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (id, author_id, author, content, ts, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer stmt.Close()

	for _, m := range res.Messages {
		if _, err := stmt.Exec(m.ID, m.AuthorID, m.Author, m.Content, m.Timestamp, m.Line); err != nil {
			return stats, fmt.Errorf("insert message %d: %w", m.ID, err)
		}
		stats.Indexed++
	}

	meta := map[string]string{
		"source":      source,
		"imported_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return stats, err
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, err
	}
	return stats, nil
}
