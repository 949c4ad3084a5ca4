package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatimport/internal/index"
	"github.com/Zuo-Peng/chatimport/internal/parse"
	"github.com/Zuo-Peng/chatimport/internal/report"
)

func doctorCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify input, output, database, and show stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "=== Input ===")
			fmt.Fprintf(out, "  Path: %s\n", cfg.Input)
			res, err := parse.ParseExportFile(cfg.Input)
			if err != nil {
				fmt.Fprintf(out, "  Status: UNREADABLE (%v)\n", err)
			} else {
				s := report.Summarize(res)
				fmt.Fprintf(out, "  Lines:    %d\n", res.Lines)
				fmt.Fprintf(out, "  Messages: %d\n", s.Total)
				fmt.Fprintf(out, "  Authors:  %d\n", len(s.Authors))
				fmt.Fprintf(out, "  Dropped:  %d lines (use --log-level debug to list them)\n", s.Dropped)
			}

			fmt.Fprintln(out, "\n=== Output ===")
			checkOutputDir(out, cfg.Output)

			fmt.Fprintln(out, "\n=== Database ===")
			fmt.Fprintf(out, "  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Fprintln(out, "  Status: NOT FOUND (run 'chatimport index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			count, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}
			fmt.Fprintf(out, "  Messages: %d\n", count)

			authors, err := db.AuthorCounts()
			if err != nil {
				return fmt.Errorf("count authors: %w", err)
			}
			for _, a := range authors {
				fmt.Fprintf(out, "    %s: %d\n", a.AuthorID, a.Count)
			}

			if src, err := db.Meta("source"); err == nil && src != "" {
				at, _ := db.Meta("imported_at")
				fmt.Fprintf(out, "  Source:   %s (%s)\n", src, at)
			}

			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Fprintf(out, "  FTS5 error: %v\n", err)
			} else if ftsCount == count {
				fmt.Fprintln(out, "  FTS5:     OK (synced)")
			} else {
				fmt.Fprintf(out, "  FTS5:     MISMATCH (messages=%d, fts=%d)\n", count, ftsCount)
			}

			return nil
		},
	}
}

func checkOutputDir(out io.Writer, path string) {
	fmt.Fprintf(out, "  Path: %s\n", path)

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(out, "  Dir:  %s (will be created)\n", dir)
	case err != nil:
		fmt.Fprintf(out, "  Dir:  %s (%v)\n", dir, err)
	case !info.IsDir():
		fmt.Fprintf(out, "  Dir:  %s (NOT A DIRECTORY)\n", dir)
	default:
		fmt.Fprintf(out, "  Dir:  %s (OK)\n", dir)
	}
}
