// Package config loads tsui5's tool configuration.
//
// Configuration is optional. Values come from, in increasing priority:
// built-in defaults, a .tsui5.yml file (home directory, then the working
// directory, or an explicit --config path), and TSUI5_* environment
// variables (TSUI5_FRAMEWORK_VERSION, TSUI5_WORKERS, ...).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
)

// Built-in defaults for the platform the scaffold targets.
const (
	DefaultFramework           = "OpenUI5"
	DefaultFrameworkVersion    = "1.100.0"
	DefaultTypesPackage        = "@openui5/ts-types-esm"
	DefaultTypesPackageVersion = "1.100.0"
)

// Config holds the resolved tool configuration.
type Config struct {
	Framework           string
	FrameworkVersion    string
	TypesPackage        string
	TypesPackageVersion string

	// Workers caps concurrent render tasks; 0 runs one goroutine per file.
	Workers int

	// Templates points at a directory that replaces the embedded catalog.
	Templates string

	// File is the config file that was read, if any.
	File string
}

// Options controls where Load looks for a config file.
type Options struct {
	File        string   // Explicit config file (--config); must exist
	SearchPaths []string // Directories searched for .tsui5.yml
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Framework:           DefaultFramework,
		FrameworkVersion:    DefaultFrameworkVersion,
		TypesPackage:        DefaultTypesPackage,
		TypesPackageVersion: DefaultTypesPackageVersion,
	}
}

// DefaultSearchPaths returns the user's home directory followed by the
// working directory.
func DefaultSearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return append(paths, ".")
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("framework", def.Framework)
	v.SetDefault("framework_version", def.FrameworkVersion)
	v.SetDefault("types_package", def.TypesPackage)
	v.SetDefault("types_package_version", def.TypesPackageVersion)
	v.SetDefault("workers", 0)
	v.SetDefault("templates", "")

	v.SetEnvPrefix("TSUI5")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName(".tsui5")
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read .tsui5.yml: %w", err)
			}
		}
	}

	cfg := &Config{
		Framework:           v.GetString("framework"),
		FrameworkVersion:    v.GetString("framework_version"),
		TypesPackage:        v.GetString("types_package"),
		TypesPackageVersion: v.GetString("types_package_version"),
		Workers:             v.GetInt("workers"),
		Templates:           v.GetString("templates"),
		File:                v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Framework == "" {
		return fmt.Errorf("framework must not be empty")
	}
	if c.TypesPackage == "" {
		return fmt.Errorf("types_package must not be empty")
	}
	if _, err := semver.StrictNewVersion(c.FrameworkVersion); err != nil {
		return fmt.Errorf("framework_version %q is not a semantic version: %w", c.FrameworkVersion, err)
	}
	if _, err := semver.StrictNewVersion(c.TypesPackageVersion); err != nil {
		return fmt.Errorf("types_package_version %q is not a semantic version: %w", c.TypesPackageVersion, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be zero or positive, got %d", c.Workers)
	}
	return nil
}
