package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

type AuthorCount struct {
	AuthorID string
	Count    int
}

type Summary struct {
	Total   int
	Dropped int // lines that produced no message
	Authors []AuthorCount
}

// Summarize counts messages per author, sorted by author identifier.
func Summarize(res *parse.ParseResult) Summary {
	counts := res.AuthorCounts()

	authors := make([]AuthorCount, 0, len(counts))
	for id, n := range counts {
		authors = append(authors, AuthorCount{AuthorID: id, Count: n})
	}
	sort.Slice(authors, func(i, j int) bool {
		return authors[i].AuthorID < authors[j].AuthorID
	})

	return Summary{
		Total:   len(res.Messages),
		Dropped: len(res.Warnings),
		Authors: authors,
	}
}

// Print writes the human readable run summary.
func Print(w io.Writer, s Summary, outputPath string) {
	fmt.Fprintf(w, "Parsed %d messages\n", s.Total)
	if outputPath != "" {
		fmt.Fprintf(w, "Output written to: %s\n", outputPath)
	}

	fmt.Fprintln(w, "\nUser message counts:")
	for _, a := range s.Authors {
		fmt.Fprintf(w, "  %s: %d messages\n", a.AuthorID, a.Count)
	}
}
