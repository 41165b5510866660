package printer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/docstrcov/docstrcov/pkg/result"
)

// JSON prints the full run statistics as an indented JSON document.
type JSON struct {
	out io.Writer
}

// NewJSON returns a JSON printer writing to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{out: out}
}

// Print renders the collection as JSON.
func (p *JSON) Print(results *result.Collection) error {
	stats := CollectStats(results)

	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(stats)
	if err != nil {
		return fmt.Errorf("encode coverage report: %w", err)
	}

	return nil
}
