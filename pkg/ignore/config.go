// Package ignore decides whether a documentable node is exempt from the
// docstring requirement and names the applicable exemption.
package ignore

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for pattern-group validation.
var (
	// ErrPatternGroupTooShort indicates a group without a file pattern and
	// at least one name pattern.
	ErrPatternGroupTooShort = errors.New("ignore pattern group needs a file pattern and at least one name pattern")
	// ErrEmptyPattern indicates an empty regex in a pattern group.
	ErrEmptyPattern = errors.New("ignore pattern must not be empty")
)

// PatternGroup pairs a file-name regex with the node-name regexes it
// applies to. All regexes are matched against the entire string.
type PatternGroup struct {
	FilePattern  string
	NamePatterns []string
}

// Options carries the raw toggles and pattern groups used to build a Config.
type Options struct {
	SkipMagic         bool
	SkipFileDocstring bool
	SkipInit          bool
	SkipClassDef      bool
	SkipPrivate       bool
	SkipProperty      bool
	SkipSetter        bool
	SkipDeleter       bool
	IgnoreNames       []PatternGroup
}

// compiledGroup holds a pattern group with its regexes pre-compiled.
type compiledGroup struct {
	fileRegex   *regexp.Regexp
	nameRegexes []*regexp.Regexp
}

// Config is an immutable exemption rule set. Build it with NewConfig;
// pattern regexes are validated and compiled exactly once there.
type Config struct {
	skipMagic         bool
	skipFileDocstring bool
	skipInit          bool
	skipClassDef      bool
	skipPrivate       bool
	skipProperty      bool
	skipSetter        bool
	skipDeleter       bool
	groups            []compiledGroup
}

// NewConfig validates opts and returns the immutable rule set.
// Invalid pattern groups fail here, before any analysis begins.
func NewConfig(opts Options) (*Config, error) {
	groups := make([]compiledGroup, 0, len(opts.IgnoreNames))

	for i, group := range opts.IgnoreNames {
		compiled, err := compileGroup(group)
		if err != nil {
			return nil, fmt.Errorf("ignore_names group %d: %w", i, err)
		}

		groups = append(groups, compiled)
	}

	return &Config{
		skipMagic:         opts.SkipMagic,
		skipFileDocstring: opts.SkipFileDocstring,
		skipInit:          opts.SkipInit,
		skipClassDef:      opts.SkipClassDef,
		skipPrivate:       opts.SkipPrivate,
		skipProperty:      opts.SkipProperty,
		skipSetter:        opts.SkipSetter,
		skipDeleter:       opts.SkipDeleter,
		groups:            groups,
	}, nil
}

// Default returns a Config with every exemption disabled.
func Default() *Config {
	cfg, err := NewConfig(Options{})
	if err != nil {
		panic("ignore: default config must be valid: " + err.Error())
	}

	return cfg
}

func compileGroup(group PatternGroup) (compiledGroup, error) {
	if group.FilePattern == "" || len(group.NamePatterns) == 0 {
		return compiledGroup{}, ErrPatternGroupTooShort
	}

	fileRegex, err := compileFull(group.FilePattern)
	if err != nil {
		return compiledGroup{}, err
	}

	nameRegexes := make([]*regexp.Regexp, 0, len(group.NamePatterns))

	for _, pattern := range group.NamePatterns {
		nameRegex, compileErr := compileFull(pattern)
		if compileErr != nil {
			return compiledGroup{}, compileErr
		}

		nameRegexes = append(nameRegexes, nameRegex)
	}

	return compiledGroup{fileRegex: fileRegex, nameRegexes: nameRegexes}, nil
}

// compileFull compiles pattern anchored to match the entire string.
func compileFull(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	compiled, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	return compiled, nil
}

// SkipMagic reports whether non-init magic methods are exempt.
func (c *Config) SkipMagic() bool { return c.skipMagic }

// SkipFileDocstring reports whether module docstrings are exempt.
func (c *Config) SkipFileDocstring() bool { return c.skipFileDocstring }

// SkipInit reports whether __init__ methods are exempt.
func (c *Config) SkipInit() bool { return c.skipInit }

// SkipClassDef reports whether class definitions are exempt.
func (c *Config) SkipClassDef() bool { return c.skipClassDef }

// SkipPrivate reports whether single-underscore names are exempt.
func (c *Config) SkipPrivate() bool { return c.skipPrivate }

// SkipProperty reports whether property getters are exempt.
func (c *Config) SkipProperty() bool { return c.skipProperty }

// SkipSetter reports whether property setters are exempt.
func (c *Config) SkipSetter() bool { return c.skipSetter }

// SkipDeleter reports whether property deleters are exempt.
func (c *Config) SkipDeleter() bool { return c.skipDeleter }
