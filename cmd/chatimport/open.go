package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatimport/internal/open"
)

func openCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open the export file in $EDITOR at a message's line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid message id %q", args[0])
			}

			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}

			res, err := loadExport(cfg)
			if err != nil {
				return err
			}

			return open.OpenMessage(res, cfg.Input, id)
		},
	}
}
