// Package badge renders a flat SVG coverage badge in the style of
// coverage-badge.
package badge

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

//go:embed flat.svg
var flatTemplate string

// DefaultFileName is appended when the badge target is a directory.
const DefaultFileName = "docstr_coverage_badge.svg"

const (
	valuePlaceholder = "{{ value }}"
	colorPlaceholder = "{{ color }}"

	svgExtension = ".svg"
	fileMode     = 0o644
)

// colorRange maps a minimum rounded coverage to a badge fill color.
type colorRange struct {
	Minimum int
	Color   string
}

// colorRanges are evaluated top-down; the first minimum at or below the
// rounded coverage wins.
var colorRanges = []colorRange{
	{95, "#4c1"},
	{90, "#97CA00"},
	{75, "#a4a61d"},
	{60, "#dfb317"},
	{40, "#fe7d37"},
	{0, "#e05d44"},
}

const fallbackColor = "#9f9f9f"

// Badge is a coverage badge bound to an output path.
type Badge struct {
	path     string
	coverage int
}

// New returns a badge for the given coverage percentage. A directory path
// gets DefaultFileName appended; a missing .svg extension is added.
func New(path string, coverage float64) *Badge {
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}

	if !strings.HasSuffix(path, svgExtension) {
		path += svgExtension
	}

	return &Badge{
		path:     path,
		coverage: int(math.Round(coverage)),
	}
}

// Path returns the resolved output path.
func (b *Badge) Path() string {
	return b.path
}

// Color returns the hex fill color for the badge value.
func (b *Badge) Color() string {
	for _, r := range colorRanges {
		if b.coverage >= r.Minimum {
			return r.Color
		}
	}

	return fallbackColor
}

// Render returns the badge SVG contents.
func (b *Badge) Render() string {
	svg := strings.ReplaceAll(flatTemplate, valuePlaceholder, fmt.Sprintf("%d", b.coverage))

	return strings.ReplaceAll(svg, colorPlaceholder, b.Color())
}

// Save writes the badge SVG to its path and returns the path written.
func (b *Badge) Save() (string, error) {
	writeErr := os.WriteFile(b.path, []byte(b.Render()), fileMode)
	if writeErr != nil {
		return "", fmt.Errorf("write badge %s: %w", b.path, writeErr)
	}

	return b.path, nil
}
