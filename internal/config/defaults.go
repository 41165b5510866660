package config

import "github.com/spf13/viper"

// Config file discovery.
const (
	configFileName = ".docstrcov"
	configFileType = "yaml"
	envPrefix      = "DOCSTRCOV"
)

// Value bounds.
const (
	maxVerbosity = 4
	maxFailUnder = 100.0
)

// Run defaults.
const (
	defaultVerbosity = 3
	defaultFormat    = FormatText
	defaultFailUnder = 100.0
)

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("paths", []string{"."})
	viperCfg.SetDefault("exclude", "")
	viperCfg.SetDefault("verbose", defaultVerbosity)
	viperCfg.SetDefault("format", defaultFormat)
	viperCfg.SetDefault("fail_under", defaultFailUnder)
	viperCfg.SetDefault("badge", "")
	viperCfg.SetDefault("percentage_only", false)
	viperCfg.SetDefault("accept_empty", false)
	viperCfg.SetDefault("follow_links", false)

	viperCfg.SetDefault("skip_magic", false)
	viperCfg.SetDefault("skip_file_docstring", false)
	viperCfg.SetDefault("skip_init", false)
	viperCfg.SetDefault("skip_class_def", false)
	viperCfg.SetDefault("skip_private", false)
	viperCfg.SetDefault("skip_property", false)
	viperCfg.SetDefault("skip_setter", false)
	viperCfg.SetDefault("skip_deleter", false)

	viperCfg.SetDefault("ignore_names_file", "")
}
