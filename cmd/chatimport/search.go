package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatimport/internal/index"
	"github.com/Zuo-Peng/chatimport/internal/search"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

// isTerminal reports whether w is a terminal; colors are only written to terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func colorizeSnippet(snippet string, color bool) string {
	if !color {
		snippet = strings.ReplaceAll(snippet, ">>>", "")
		return strings.ReplaceAll(snippet, "<<<", "")
	}
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	return strings.ReplaceAll(snippet, "<<<", sColorReset)
}

func searchCmd(f *flags) *cobra.Command {
	var author string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across imported messages",
		Long: `Search imported messages using FTS5. The index is rebuilt from the export
first when the export file exists. Output is TSV:
  id, authorId, timestamp, line, snippet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			// refresh the index from the export when it is around
			if _, err := os.Stat(cfg.Input); err == nil {
				res, err := loadExport(cfg)
				if err != nil {
					return err
				}
				if _, err := index.Rebuild(db, cfg.Input, res); err != nil {
					return fmt.Errorf("index: %w", err)
				}
			} else {
				log.Warn().Str("file", cfg.Input).Msg("export not found, searching existing index")
			}

			results, err := search.Search(db, search.Options{
				Query:  args[0],
				Author: author,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No results found.")
				return nil
			}

			out := cmd.OutOrStdout()
			color := isTerminal(out)
			for _, r := range results {
				snippet := strings.ReplaceAll(r.Snippet, "\t", " ")
				snippet = colorizeSnippet(strings.ReplaceAll(snippet, "\n", " "), color)
				authorID := r.AuthorID
				ts := r.Timestamp
				if color {
					authorID = sColorBlue + authorID + sColorReset
					ts = sColorDim + ts + sColorReset
				}
				// id stays plain so it can be piped into 'chatimport open'
				fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%s\n", r.ID, authorID, ts, r.Line, snippet)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Filter by author id")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
