package pysrc

import "fmt"

// ParseError reports that a source file could not be parsed into a valid
// tree. It is fatal for the file's analysis but not for the whole run.
type ParseError struct {
	Path   string
	Line   uint
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.Path, e.Line, e.Reason)
}
