package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultInput  = "import.txt"
	DefaultOutput = "src/data/channels/parsed-discord.json"
)

type Config struct {
	Input    string `toml:"input"`
	Output   string `toml:"output"`
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
}

// Load returns the defaults, overridden by ~/.config/chatimport/config.toml
// when that file exists. Without a home directory only the defaults apply.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaults(""), nil
	}
	return LoadFile(filepath.Join(home, ".config", "chatimport", "config.toml"), home)
}

func defaults(home string) *Config {
	dbPath := "messages.db"
	if home != "" {
		dbPath = filepath.Join(home, ".config", "chatimport", "messages.db")
	}
	return &Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		DBPath:   dbPath,
		LogLevel: "warn",
	}
}

func LoadFile(cfgPath, home string) (*Config, error) {
	cfg := defaults(home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.Input = expandHome(cfg.Input, home)
	cfg.Output = expandHome(cfg.Output, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
