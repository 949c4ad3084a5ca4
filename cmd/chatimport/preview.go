package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/chatimport/internal/render"
)

func previewCmd(f *flags) *cobra.Command {
	var id int
	var context int
	var query string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the parsed transcript, optionally around one message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}

			res, err := loadExport(cfg)
			if err != nil {
				return err
			}
			if id > 0 && res.ByID(id) == nil {
				return fmt.Errorf("message not found: %d", id)
			}

			w := cmd.OutOrStdout()
			opts := render.Options{
				HitID:   id,
				Context: context,
				Query:   query,
				Title:   cfg.Input,
				Plain:   !isTerminal(w),
			}
			if f, ok := w.(*os.File); ok && !opts.Plain {
				if width, _, err := term.GetSize(int(f.Fd())); err == nil {
					opts.Width = width
				}
			}

			out, _ := render.RenderMessages(res.Messages, opts)
			fmt.Fprint(w, out)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Message id to highlight")
	cmd.Flags().IntVar(&context, "context", -1, "Messages before/after the highlighted one (-1 = all)")
	cmd.Flags().StringVar(&query, "query", "", "Keywords to highlight")

	return cmd
}
