package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatimport/internal/tui"
)

func browseCmd(f *flags) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse parsed messages interactively",
		Long:  `Opens a TUI listing the parsed messages. Type to filter by author or content; Enter copies the selected message.`,
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

			return tui.Run(cfg.Input, res.Messages, query)
		},
	}

	cmd.Flags().StringVar(&query, "filter", "", "Initial filter")

	return cmd
}
