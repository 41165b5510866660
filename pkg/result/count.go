package result

// percentScale converts a ratio to a percentage.
const percentScale = 100

// vacuousCoverage is the coverage reported when no docstrings are needed.
// A file with nothing to document is fully compliant.
const vacuousCoverage = 100.0

// FileCount holds docstring counts for a single file.
type FileCount struct {
	IsEmpty bool
	Needed  int
	Found   int
	Missing int
}

// Coverage returns the docstring coverage for this file as a percentage.
func (c FileCount) Coverage() float64 {
	return calculateCoverage(c.Found, c.Needed)
}

// AggregatedCount holds docstring counts summed over a list of files.
type AggregatedCount struct {
	NumFiles      int
	NumEmptyFiles int
	Needed        int
	Found         int
	Missing       int
}

// Add combines two aggregated counts field by field.
// The operation is associative and commutative.
func (c AggregatedCount) Add(other AggregatedCount) AggregatedCount {
	return AggregatedCount{
		NumFiles:      c.NumFiles + other.NumFiles,
		NumEmptyFiles: c.NumEmptyFiles + other.NumEmptyFiles,
		Needed:        c.Needed + other.Needed,
		Found:         c.Found + other.Found,
		Missing:       c.Missing + other.Missing,
	}
}

// AddFile folds a single file's count into the aggregate.
// The file contributes one to NumFiles, and one to NumEmptyFiles when empty.
func (c AggregatedCount) AddFile(file FileCount) AggregatedCount {
	aggregate := AggregatedCount{
		NumFiles: 1,
		Needed:   file.Needed,
		Found:    file.Found,
		Missing:  file.Missing,
	}

	if file.IsEmpty {
		aggregate.NumEmptyFiles = 1
	}

	return c.Add(aggregate)
}

// Coverage returns the overall docstring coverage as a percentage.
func (c AggregatedCount) Coverage() float64 {
	return calculateCoverage(c.Found, c.Needed)
}

// calculateCoverage computes found/needed as a percentage.
// Needed == 0 yields 100.0 rather than a division by zero.
func calculateCoverage(found, needed int) float64 {
	if needed == 0 {
		return vacuousCoverage
	}

	return float64(found) * percentScale / float64(needed)
}
