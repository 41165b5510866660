// Package config provides configuration loading and validation for docstrcov.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/docstrcov/docstrcov/pkg/ignore"
)

// Sentinel validation errors.
var (
	ErrInvalidVerbosity = errors.New("verbosity must be between 0 and 4")
	ErrInvalidFailUnder = errors.New("fail-under must be between 0 and 100")
	ErrInvalidFormat    = errors.New("unknown output format")
)

// Output formats accepted by the scan command.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Config holds all configuration for a docstrcov run.
type Config struct {
	Paths             []string       `mapstructure:"paths"`
	Exclude           string         `mapstructure:"exclude"`
	Verbose           int            `mapstructure:"verbose"`
	Format            string         `mapstructure:"format"`
	FailUnder         float64        `mapstructure:"fail_under"`
	Badge             string         `mapstructure:"badge"`
	PercentageOnly    bool           `mapstructure:"percentage_only"`
	AcceptEmpty       bool           `mapstructure:"accept_empty"`
	FollowLinks       bool           `mapstructure:"follow_links"`
	SkipMagic         bool           `mapstructure:"skip_magic"`
	SkipFileDocstring bool           `mapstructure:"skip_file_docstring"`
	SkipInit          bool           `mapstructure:"skip_init"`
	SkipClassDef      bool           `mapstructure:"skip_class_def"`
	SkipPrivate       bool           `mapstructure:"skip_private"`
	SkipProperty      bool           `mapstructure:"skip_property"`
	SkipSetter        bool           `mapstructure:"skip_setter"`
	SkipDeleter       bool           `mapstructure:"skip_deleter"`
	IgnoreNamesFile   string         `mapstructure:"ignore_names_file"`
	IgnorePatterns    map[string]any `mapstructure:"ignore_patterns"`
}

// Load loads configuration from file and environment variables. An empty
// configPath searches for a .docstrcov file in the working directory and
// the home directory; a missing file leaves the defaults in place.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configFileName)
		viperCfg.SetConfigType(configFileType)
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Validate checks value ranges and the ignore_patterns document shape.
func (c *Config) Validate() error {
	if c.Verbose < 0 || c.Verbose > maxVerbosity {
		return fmt.Errorf("%w: %d", ErrInvalidVerbosity, c.Verbose)
	}

	if c.FailUnder < 0 || c.FailUnder > maxFailUnder {
		return fmt.Errorf("%w: %v", ErrInvalidFailUnder, c.FailUnder)
	}

	switch c.Format {
	case FormatText, FormatJSON, FormatMarkdown, FormatHTML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if len(c.IgnorePatterns) > 0 {
		schemaErr := validateIgnorePatterns(c.IgnorePatterns)
		if schemaErr != nil {
			return schemaErr
		}
	}

	return nil
}

// IgnoreOptions projects the configuration onto the ignore engine options.
// Pattern groups come from ignore_patterns plus the legacy ignore names
// file when one is present.
func (c *Config) IgnoreOptions() (ignore.Options, error) {
	groups := patternGroups(c.IgnorePatterns)

	if c.IgnoreNamesFile != "" {
		legacyGroups, parseErr := ParseIgnoreNamesFile(c.IgnoreNamesFile)
		if parseErr != nil {
			return ignore.Options{}, parseErr
		}

		groups = append(groups, legacyGroups...)
	}

	return ignore.Options{
		SkipMagic:         c.SkipMagic,
		SkipFileDocstring: c.SkipFileDocstring,
		SkipInit:          c.SkipInit,
		SkipClassDef:      c.SkipClassDef,
		SkipPrivate:       c.SkipPrivate,
		SkipProperty:      c.SkipProperty,
		SkipSetter:        c.SkipSetter,
		SkipDeleter:       c.SkipDeleter,
		IgnoreNames:       groups,
	}, nil
}

// patternGroups flattens the ignore_patterns mapping into ordered groups.
// Map iteration order is unspecified, so file patterns are sorted.
func patternGroups(patterns map[string]any) []ignore.PatternGroup {
	if len(patterns) == 0 {
		return nil
	}

	filePatterns := make([]string, 0, len(patterns))
	for filePattern := range patterns {
		filePatterns = append(filePatterns, filePattern)
	}

	sort.Strings(filePatterns)

	groups := make([]ignore.PatternGroup, 0, len(filePatterns))

	for _, filePattern := range filePatterns {
		groups = append(groups, ignore.PatternGroup{
			FilePattern:  filePattern,
			NamePatterns: namePatterns(patterns[filePattern]),
		})
	}

	return groups
}

// namePatterns accepts the two value shapes the schema allows, a single
// pattern string or a list of them.
func namePatterns(value any) []string {
	switch typed := value.(type) {
	case string:
		return []string{typed}
	case []any:
		names := make([]string, 0, len(typed))
		for _, item := range typed {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}

		return names
	case []string:
		return typed
	default:
		return nil
	}
}
