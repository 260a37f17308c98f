// Package config loads converter settings from flags, environment and an
// optional kicad2easyeda.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/OpenTraceLab/kicad2easyeda/pkg/easyeda"
	"github.com/OpenTraceLab/kicad2easyeda/pkg/kicad/footprint"
)

// Setting keys. Environment variables use the KICAD2EASYEDA_ prefix, e.g.
// KICAD2EASYEDA_CONTRIBUTOR.
const (
	KeyVerbose     = "verbose"
	KeyContributor = "contributor"
	KeyPrefix      = "prefix"
	KeyLayerWindow = "layer_window"

	EnvPrefix = "KICAD2EASYEDA"
	fileName  = "kicad2easyeda"
)

// ErrInvalidLayerWindow is returned when the layer window is not positive.
var ErrInvalidLayerWindow = errors.New("layer window must be positive")

// Config controls a conversion run.
type Config struct {
	Verbose     bool   `mapstructure:"verbose"`
	Contributor string `mapstructure:"contributor"`
	Prefix      string `mapstructure:"prefix"`
	LayerWindow int    `mapstructure:"layer_window"`
}

// Default returns the settings that reproduce the stock EasyEDA output.
func Default() *Config {
	doc := easyeda.DefaultOptions()
	return &Config{
		Contributor: doc.Contributor,
		Prefix:      doc.Prefix,
		LayerWindow: footprint.DefaultLayerWindow,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.LayerWindow <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLayerWindow, c.LayerWindow)
	}
	return nil
}

// DocumentOptions returns the document metadata part of the config.
func (c *Config) DocumentOptions() easyeda.Options {
	return easyeda.Options{Prefix: c.Prefix, Contributor: c.Contributor}
}

// ExtractOptions returns the extraction part of the config.
func (c *Config) ExtractOptions() footprint.Options {
	return footprint.Options{LayerWindow: c.LayerWindow}
}

// NewViper creates a viper instance with defaults, environment binding and
// the config file search path. An empty cfgFile searches the working
// directory and ~/.config/kicad2easyeda for kicad2easyeda.<ext> with any
// extension viper supports.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyVerbose, def.Verbose)
	v.SetDefault(KeyContributor, def.Contributor)
	v.SetDefault(KeyPrefix, def.Prefix)
	v.SetDefault(KeyLayerWindow, def.LayerWindow)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Only kicad2easyeda.<ext> matches while no config type is set;
		// the bare name is the built binary.
		v.SetConfigName(fileName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", fileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file if there is one and decodes the settings.
// A missing file found by searching is not an error; a missing file named
// explicitly is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
