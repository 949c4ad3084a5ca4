package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatimport/internal/index"
)

func indexCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the searchable message database from the export",
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

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			stats, err := index.Rebuild(db, cfg.Input, res)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			log.Info().Str("db", cfg.DBPath).Msg("index rebuilt")
			fmt.Fprintf(cmd.ErrOrStderr(), "Done. %s\n", stats)
			return nil
		},
	}
}
