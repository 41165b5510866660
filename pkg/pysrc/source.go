// Package pysrc turns raw Python source text into the parse tree and the
// per-line comment index consumed by the docstring visitor.
package pysrc

import (
	"context"
	"fmt"
	"strings"
	"sync"

	python "github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// commentNodeType is the tree-sitter node type for Python comments.
const commentNodeType = "comment"

// errorNodeType is the tree-sitter node type for parse error subtrees.
const errorNodeType = "ERROR"

var (
	pythonOnce sync.Once
	pythonLang *sitter.Language
)

// pythonLanguage returns the shared tree-sitter Python grammar.
func pythonLanguage() *sitter.Language {
	pythonOnce.Do(func() {
		pythonLang = sitter.NewLanguage(python.GetLanguage())
	})

	return pythonLang
}

// tsParserPool reuses tree-sitter parser instances across files.
var tsParserPool = sync.Pool{
	New: func() any {
		tsParser := sitter.NewParser()
		tsParser.SetLanguage(pythonLanguage())

		return tsParser
	},
}

// Source is one parsed Python file: its tree, raw bytes, and a line-indexed
// view of comments and blank lines. Build once per file via Parse.
type Source struct {
	Path     string
	Content  []byte
	tree     *sitter.Tree
	root     sitter.Node
	comments map[uint]string
	blank    []bool
}

// Parse parses content as Python source. A tree containing error subtrees
// yields a *ParseError; the parse tree is never silently degraded.
// The caller owns the returned Source and must Close it after use.
func Parse(ctx context.Context, path string, content []byte) (*Source, error) {
	tsParser, ok := tsParserPool.Get().(*sitter.Parser)
	if !ok {
		panic("pysrc: unexpected parser pool element type")
	}

	defer tsParserPool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("pysrc: parse %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.IsNull() {
		tree.Close()

		return nil, &ParseError{Path: path, Line: 1, Reason: "no parse tree produced"}
	}

	if root.HasError() {
		line, reason := firstErrorLocation(root)
		if reason == "" {
			line, reason = 1, "invalid syntax"
		}

		tree.Close()

		return nil, &ParseError{Path: path, Line: line, Reason: reason}
	}

	src := &Source{
		Path:     path,
		Content:  content,
		tree:     tree,
		root:     root,
		comments: make(map[uint]string),
		blank:    blankLines(content),
	}
	src.indexComments(root)

	return src, nil
}

// Close releases the underlying parse tree. The Source and any nodes
// obtained from it must not be used afterwards.
func (s *Source) Close() {
	if s.tree != nil {
		s.tree.Close()
		s.tree = nil
	}
}

// Root returns the module node of the parse tree.
func (s *Source) Root() sitter.Node {
	return s.root
}

// NodeText returns the source text spanned by the given node.
func (s *Source) NodeText(n sitter.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if uint(len(s.Content)) < end {
		return ""
	}

	return string(s.Content[start:end])
}

// CommentAt returns the comment token text on the given zero-based row.
func (s *Source) CommentAt(row uint) (string, bool) {
	text, ok := s.comments[row]

	return text, ok
}

// IsBlank reports whether the given zero-based row holds no tokens other
// than whitespace or sits beyond the end of the file.
func (s *Source) IsBlank(row uint) bool {
	if row >= uint(len(s.blank)) {
		return true
	}

	return s.blank[row]
}

// indexComments records every comment token keyed by its starting row.
// Comments are extras in the Python grammar, so they appear as named
// children throughout the tree.
func (s *Source) indexComments(n sitter.Node) {
	if n.Type() == commentNodeType {
		s.comments[uint(n.StartPoint().Row)] = s.NodeText(n)

		return
	}

	for i := range n.NamedChildCount() {
		s.indexComments(n.NamedChild(i))
	}
}

// blankLines precomputes which rows contain only whitespace.
func blankLines(content []byte) []bool {
	lines := strings.Split(string(content), "\n")
	blank := make([]bool, len(lines))

	for i, line := range lines {
		blank[i] = strings.TrimSpace(line) == ""
	}

	return blank
}

// firstErrorLocation finds the first error or missing node in the tree and
// returns its one-based line plus a short description.
func firstErrorLocation(n sitter.Node) (uint, string) {
	if n.Type() == errorNodeType {
		return uint(n.StartPoint().Row) + 1, "invalid syntax"
	}

	if n.IsMissing() {
		return uint(n.StartPoint().Row) + 1, fmt.Sprintf("missing %q", n.Type())
	}

	for i := range n.ChildCount() {
		line, reason := firstErrorLocation(n.Child(i))
		if reason != "" {
			return line, reason
		}
	}

	return 0, ""
}
