package visitor

import (
	"regexp"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/docstrcov/docstrcov/pkg/pysrc"
)

// Excuse comments substitute for a missing docstring. Either form must
// fully match a single comment token directly above the definition,
// skipping blank lines and decorator lines.
var (
	inheritExcuseRegex  = regexp.MustCompile(`^#\s*docstr-coverage\s*:\s*inherit(ed)?\s*$`)
	explicitExcuseRegex = regexp.MustCompile("^#\\s*docstr-coverage\\s*:\\s*excuse(d)?\\s*`.*`\\s*$")
)

// hasExcuseComment scans upward from the line preceding def's declaration.
// Rows spanned by outer's decorator applications and blank rows are
// skipped; the first remaining row decides: an excuse comment there counts
// as documentation, anything else ends the scan. A comment sitting between
// a decorator and the def is not skippable and decides like any other.
func hasExcuseComment(src *pysrc.Source, def, outer sitter.Node) bool {
	defRow := uint(def.StartPoint().Row)
	decoratorRows := decoratorRowSpans(outer)

	row := defRow
	for row > 0 {
		row--

		if _, decorated := decoratorRows[row]; decorated {
			continue
		}

		if comment, ok := src.CommentAt(row); ok {
			return inheritExcuseRegex.MatchString(comment) || explicitExcuseRegex.MatchString(comment)
		}

		if src.IsBlank(row) {
			continue
		}

		return false
	}

	return false
}

// decoratorRowSpans collects every row spanned by a decorator node of
// outer. Decorator calls may span multiple rows; rows holding only
// comments or blanks between decorators are not included.
func decoratorRowSpans(outer sitter.Node) map[uint]struct{} {
	rows := make(map[uint]struct{})

	if outer.Type() != typeDecoratedDefinition {
		return rows
	}

	for i := range outer.NamedChildCount() {
		child := outer.NamedChild(i)
		if child.Type() != typeDecorator {
			continue
		}

		for row := uint(child.StartPoint().Row); row <= uint(child.EndPoint().Row); row++ {
			rows[row] = struct{}{}
		}
	}

	return rows
}
