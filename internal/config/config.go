// Package config loads server configuration from an optional YAML file,
// EXAMGAME_* environment variables, and command-line flags, in rising order
// of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "EXAMGAME_"

// Config is the resolved server configuration.
type Config struct {
	Addr     string   `koanf:"addr"`
	DBPath   string   `koanf:"db"`
	ReposDir string   `koanf:"repos-dir"`
	Sources  []string `koanf:"source"`
}

// Load resolves configuration from the parsed flag set. A --config flag, if
// present and non-empty, names a YAML file loaded first; environment
// variables override the file, and explicitly set flags override everything.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, err := flags.GetString("config"); err == nil && path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// EXAMGAME_REPOS_DIR -> repos-dir, etc.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
