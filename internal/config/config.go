// Package config loads featuredb settings from .featuredb.yaml, FEATUREDB_*
// environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/roach88/featuredb/internal/extract"
	"github.com/roach88/featuredb/internal/inject"
	"github.com/roach88/featuredb/internal/ir"
)

// EnvPrefix is the prefix of environment variables read by Init.
const EnvPrefix = "FEATUREDB"

// ExtractConfig holds extractor settings.
type ExtractConfig struct {
	Heading         string `mapstructure:"heading" validate:"oneof=h1 h2 h3 h4 h5 h6"`
	CommitSegment   string `mapstructure:"commit_segment" validate:"required,startswith=/,endswith=/"`
	Strict          bool   `mapstructure:"strict"`
	RequireSections bool   `mapstructure:"require_sections"`
}

// Config holds all runtime configuration for the featuredb pipeline.
type Config struct {
	MarkupPath     string        `mapstructure:"markup_path" validate:"required"`
	DataPath       string        `mapstructure:"data_path" validate:"required"`
	IndexPath      string        `mapstructure:"index_path" validate:"required"`
	PagePath       string        `mapstructure:"page_path" validate:"required"`
	CategoriesPath string        `mapstructure:"categories_path" validate:"required"`
	CommitBaseURL  string        `mapstructure:"commit_base_url" validate:"omitempty,url"`
	Placeholder    string        `mapstructure:"placeholder" validate:"required"`
	GlobalName     string        `mapstructure:"global_name" validate:"required"`
	Extract        ExtractConfig `mapstructure:"extract"`
}

// SetDefaults registers the built-in default for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("markup_path", extract.DefaultMarkupPath)
	v.SetDefault("data_path", "src/static/features-data.json")
	v.SetDefault("index_path", "src/static/features-index.json")
	v.SetDefault("page_path", "dist/features.html")
	v.SetDefault("categories_path", "src/features/categories.cue")
	v.SetDefault("commit_base_url", "")
	v.SetDefault("placeholder", inject.DefaultPlaceholder)
	v.SetDefault("global_name", inject.DefaultGlobal)
	v.SetDefault("extract.heading", extract.DefaultHeading)
	v.SetDefault("extract.commit_segment", extract.DefaultCommitSegment)
	v.SetDefault("extract.strict", false)
	v.SetDefault("extract.require_sections", false)
}

// Init points v at the config file and the environment. With an empty
// cfgFile, .featuredb.yaml is looked up in dir and its absence is not an
// error. An explicit cfgFile must exist.
func Init(v *viper.Viper, cfgFile, dir string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".featuredb")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load applies defaults and decodes v into a validated Config.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ExtractOptions converts the extractor settings for extract.Extract.
func (c Config) ExtractOptions() extract.Options {
	return extract.Options{
		Mode:            ir.ModeFor(c.Extract.Strict),
		Heading:         c.Extract.Heading,
		CommitSegment:   c.Extract.CommitSegment,
		RequireSections: c.Extract.RequireSections,
	}
}
