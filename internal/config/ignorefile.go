package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/docstrcov/docstrcov/pkg/ignore"
)

// DefaultIgnoreNamesFile is the historical flat ignore file searched for
// next to the scan target.
const DefaultIgnoreNamesFile = ".docstr_coverage"

// ParseIgnoreNamesFile parses the flat ignore file format: one group per
// line, space-delimited, the first value a file pattern and the rest name
// patterns. Lines without a space are skipped. A missing file yields no
// groups.
func ParseIgnoreNamesFile(path string) ([]ignore.PatternGroup, error) {
	handle, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return nil, nil
		}

		return nil, fmt.Errorf("open ignore names file %s: %w", path, openErr)
	}
	defer handle.Close()

	var groups []ignore.PatternGroup

	scanner := bufio.NewScanner(handle)
	for scanner.Scan() {
		if !strings.Contains(scanner.Text(), " ") {
			continue
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		groups = append(groups, ignore.PatternGroup{
			FilePattern:  fields[0],
			NamePatterns: fields[1:],
		})
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		return nil, fmt.Errorf("read ignore names file %s: %w", path, scanErr)
	}

	return groups, nil
}
