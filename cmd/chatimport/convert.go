package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatimport/internal/channel"
	"github.com/Zuo-Peng/chatimport/internal/config"
	"github.com/Zuo-Peng/chatimport/internal/report"
)

func convertCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Parse the export and write channel JSON (default action)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg)
		},
	}
}

func runConvert(cmd *cobra.Command, cfg *config.Config) error {
	res, err := loadExport(cfg)
	if err != nil {
		return err
	}

	if err := channel.Write(cfg.Output, channel.FromMessages(res.Messages)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	report.Print(cmd.OutOrStdout(), report.Summarize(res), cfg.Output)
	return nil
}
