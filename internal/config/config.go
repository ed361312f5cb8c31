// Package config merges mathema's settings from a config file,
// environment variables, and command-line flags, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// ConfigFileName is looked up in the working directory.
	ConfigFileName = "mathema.yaml"

	envPrefix = "MATHEMA_"
)

// Config is everything the commands need beyond their positional
// arguments.
type Config struct {
	// Directory is the deck directory.
	Directory string `koanf:"directory" validate:"required"`

	// Duration is the quiz time budget in minutes.
	Duration int `koanf:"duration" validate:"gte=1"`

	// Listen is the serve command's bind address.
	Listen string `koanf:"listen" validate:"hostname_port"`

	// Force continues past ignorable deck problems.
	Force bool `koanf:"force"`
}

// Load builds the Config from mathema.yaml (if present), MATHEMA_*
// environment variables, and the parsed flag set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if _, err := os.Stat(ConfigFileName); err == nil {
		if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", ConfigFileName, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
