package result

// LegacyFileResult is the backward-compatible per-file report shape.
type LegacyFileResult struct {
	Missing      []string `json:"missing"`
	ModuleDoc    bool     `json:"module_doc"`
	MissingCount int      `json:"missing_count"`
	NeededCount  int      `json:"needed_count"`
	Coverage     float64  `json:"coverage"`
	Empty        bool     `json:"empty"`
}

// LegacyOverallResult is the backward-compatible run-wide report shape.
type LegacyOverallResult struct {
	MissingCount int     `json:"missing_count"`
	NeededCount  int     `json:"needed_count"`
	Coverage     float64 `json:"coverage"`
}

// ToLegacy converts the collection into the less expressive per-file and
// overall count shapes used by early consumers. Ignored-node detail is
// intentionally dropped.
func (c *Collection) ToLegacy() (map[string]LegacyFileResult, LegacyOverallResult) {
	fileResults := make(map[string]LegacyFileResult, len(c.order))

	for _, entry := range c.Files() {
		missing := make([]string, 0)
		moduleDoc := false

		for _, expd := range entry.File.ExpectedDocstrings() {
			if expd.NodeIdentifier == ModuleIdentifier {
				if expd.HasDocstring {
					moduleDoc = true
				}

				continue
			}

			if expd.IgnoreReason == "" && !expd.HasDocstring {
				missing = append(missing, expd.NodeIdentifier)
			}
		}

		count := entry.File.Count()
		fileResults[entry.Path] = LegacyFileResult{
			Missing:      missing,
			ModuleDoc:    moduleDoc,
			MissingCount: count.Missing,
			NeededCount:  count.Needed,
			Coverage:     count.Coverage(),
			Empty:        count.IsEmpty,
		}
	}

	total := c.CountAggregate()
	overall := LegacyOverallResult{
		MissingCount: total.Missing,
		NeededCount:  total.Needed,
		Coverage:     total.Coverage(),
	}

	return fileResults, overall
}
