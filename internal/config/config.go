// Package config holds the option surface consumed by the pipeline and its
// loading from config file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = ".docgen.yml"

// EnvPrefix prefixes environment overrides, e.g. DOCGEN_OUTPUT.
const EnvPrefix = "DOCGEN"

// Options is the configuration surface consumed by the core pipeline.
type Options struct {
	// SourceDirs are the directories scanned for annotated declarations.
	SourceDirs []string `mapstructure:"source" yaml:"source" validate:"min=1,dive,required"`
	// FilePatterns select candidate file names within the source dirs.
	FilePatterns []string `mapstructure:"patterns" yaml:"patterns" validate:"min=1,dive,required"`
	// OutputDir receives one Markdown file per resource.
	OutputDir string `mapstructure:"output" yaml:"output" validate:"required"`
	// IgnoreFile overrides the default ignore file location.
	IgnoreFile string `mapstructure:"ignore_file" yaml:"ignore_file"`
	// Force overwrites existing output files.
	Force bool `mapstructure:"force" yaml:"force"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	// Extended enables the extended validation checks in check mode.
	Extended bool `mapstructure:"extended" yaml:"extended"`
	// Watch keeps generate running and re-renders on source changes.
	Watch bool `mapstructure:"watch" yaml:"watch"`
}

// Default returns the built-in option values.
func Default() Options {
	return Options{
		SourceDirs:   []string{"."},
		FilePatterns: []string{"*.go"},
		OutputDir:    "docs",
	}
}

// LoadFile reads options from a YAML config file and DOCGEN_* environment
// variables. A missing file at the default location is fine; an explicitly
// given path must exist.
func LoadFile(path string) (Options, error) {
	opts := Default()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"source", "patterns", "output", "ignore_file", "force", "verbose", "extended", "watch"} {
		if err := v.BindEnv(key); err != nil {
			return opts, err
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return opts, fmt.Errorf("read config %s: %w", path, err)
		}
		// default config file absent, stay on defaults + env
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

var validate = validator.New()

// Validate checks the option set before the pipeline runs.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
