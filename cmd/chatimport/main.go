package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/chatimport/internal/config"
	"github.com/Zuo-Peng/chatimport/internal/parse"
)

var version = "dev"

type flags struct {
	input    string
	output   string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "chatimport",
		Short: "Convert a copy-pasted Discord export into channel JSON",
		Long: `Reads a chat transcript copied from the Discord web UI and writes it as a
channel JSON document. Run without a subcommand to convert import.txt into
src/data/channels/parsed-discord.json.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&f.input, "in", "", "export text file (default "+config.DefaultInput+")")
	rootCmd.PersistentFlags().StringVar(&f.output, "out", "", "channel JSON output (default "+config.DefaultOutput+")")
	rootCmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(convertCmd(f))
	rootCmd.AddCommand(indexCmd(f))
	rootCmd.AddCommand(searchCmd(f))
	rootCmd.AddCommand(previewCmd(f))
	rootCmd.AddCommand(browseCmd(f))
	rootCmd.AddCommand(openCmd(f))
	rootCmd.AddCommand(doctorCmd(f))

	return rootCmd
}

// loadConfig reads the config file, applies flag overrides and sets up logging.
func loadConfig(f *flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if f.input != "" {
		cfg.Input = f.input
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	if err := setupLogger(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(level string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsedLevel)
	return nil
}

// loadExport parses the configured export file and logs the lines it dropped.
func loadExport(cfg *config.Config) (*parse.ParseResult, error) {
	res, err := parse.ParseExportFile(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	for _, w := range res.Warnings {
		log.Debug().
			Int("line", w.Line).
			Str("reason", w.Reason).
			Str("text", w.Text).
			Msg("skipped line")
	}
	log.Info().
		Str("file", cfg.Input).
		Int("lines", res.Lines).
		Int("messages", len(res.Messages)).
		Int("dropped", len(res.Warnings)).
		Msg("parsed export")

	return res, nil
}
