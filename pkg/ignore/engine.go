package ignore

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docstrcov/docstrcov/pkg/visitor"
)

// Stable, human-readable exemption reasons. The empty string means the
// docstring is required.
const (
	ReasonSkipInit          = "skip-init set to True"
	ReasonSkipMagic         = "skip-magic set to True"
	ReasonSkipClassDef      = "skip-class-def set to True"
	ReasonSkipPrivate       = "skip-private set to True"
	ReasonIgnorePattern     = "matching ignore pattern"
	ReasonSkipDeleter       = "skip-deleter set to True"
	ReasonSkipProperty      = "skip-property set to True"
	ReasonSkipSetter        = "skip-setter set to True"
	ReasonSkipFileDocstring = "--skip-file-docstring=True"
)

// constructorName is the Python constructor method identifier.
const constructorName = "__init__"

// magicAffix is the double-underscore prefix and suffix of magic methods.
const magicAffix = "__"

// privatePrefix is the single-underscore prefix of private names.
const privatePrefix = "_"

// Reason classifies one node against the rule set. Rules are evaluated in
// a fixed priority order and the first applicable reason is returned; an
// empty result means the docstring is required. parentPrefix is the
// node's immediate parent name followed by a dot, or empty at top level.
func (c *Config) Reason(filePath, parentPrefix, name string, decorator visitor.Decorator) string {
	switch {
	case c.skipInit && name == constructorName:
		return ReasonSkipInit
	case c.skipMagic && isMagicName(name) && name != constructorName:
		return ReasonSkipMagic
	case c.skipClassDef && looksLikeClassName(name):
		return ReasonSkipClassDef
	case c.skipPrivate && isPrivateName(name):
		return ReasonSkipPrivate
	case len(c.groups) > 0 && c.matchesIgnorePattern(filePath, parentPrefix, name):
		return ReasonIgnorePattern
	case c.skipDeleter && decorator == visitor.DecoratorDeleter:
		return ReasonSkipDeleter
	case c.skipProperty && decorator == visitor.DecoratorProperty:
		return ReasonSkipProperty
	case c.skipSetter && decorator == visitor.DecoratorSetter:
		return ReasonSkipSetter
	default:
		return ""
	}
}

// ModuleReason classifies the module docstring pseudo-node. Only the
// file-docstring toggle applies; name-shape heuristics never do.
func (c *Config) ModuleReason() string {
	if c.skipFileDocstring {
		return ReasonSkipFileDocstring
	}

	return ""
}

// matchesIgnorePattern tries each pattern group in configuration order.
// A group applies when its file regex matches the file's base name and
// any of its name regexes matches the bare node name or the
// parent-qualified name. A file match without a name match does not stop
// the search across later groups.
func (c *Config) matchesIgnorePattern(filePath, parentPrefix, name string) bool {
	baseName := fileBaseName(filePath)

	for _, group := range c.groups {
		if !group.fileRegex.MatchString(baseName) {
			continue
		}

		for _, nameRegex := range group.nameRegexes {
			if nameRegex.MatchString(name) || nameRegex.MatchString(parentPrefix+name) {
				return true
			}
		}
	}

	return false
}

// fileBaseName strips the directory and everything from the first dot.
func fileBaseName(filePath string) string {
	base := filepath.Base(filePath)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	return base
}

// isMagicName reports the double-underscore-prefix-and-suffix convention.
func isMagicName(name string) bool {
	return strings.HasPrefix(name, magicAffix) && strings.HasSuffix(name, magicAffix)
}

// isPrivateName reports exactly one leading underscore.
func isPrivateName(name string) bool {
	return strings.HasPrefix(name, privatePrefix) && !strings.HasPrefix(name, magicAffix)
}

// looksLikeClassName is the class-name shape heuristic: no underscore
// anywhere and an uppercase-or-caseless first character.
func looksLikeClassName(name string) bool {
	if name == "" || strings.Contains(name, "_") {
		return false
	}

	first, _ := utf8.DecodeRuneInString(name)

	return unicode.ToUpper(first) == first
}
