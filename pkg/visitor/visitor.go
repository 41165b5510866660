// Package visitor walks a parsed Python file and produces the forest of
// documentable constructs with per-construct docstring presence. It is
// policy-free: exemption rules are applied later by the ignore engine.
package visitor

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/docstrcov/docstrcov/pkg/pysrc"
)

// Tree-sitter node types of the Python grammar used during traversal.
const (
	typeModule              = "module"
	typeClassDefinition     = "class_definition"
	typeFunctionDefinition  = "function_definition"
	typeDecoratedDefinition = "decorated_definition"
	typeExpressionStatement = "expression_statement"
	typeString              = "string"
	typeConcatenatedString  = "concatenated_string"
	typeStringContent       = "string_content"
	typeComment             = "comment"
)

// Field names on definition nodes.
const (
	fieldName       = "name"
	fieldBody       = "body"
	fieldDefinition = "definition"
)

// Node describes one documentable construct: a class, function, or method.
// Children hold methods of a class or functions nested in a function, in
// source order. Nodes are immutable once the traversal returns.
type Node struct {
	Name         string
	HasDocstring bool
	Decorator    Decorator
	Children     []*Node
}

// Module describes the file-level traversal result.
type Module struct {
	HasDocstring bool
	IsEmpty      bool
	Nodes        []*Node
}

// Visit walks the source's parse tree depth-first pre-order and returns the
// module flags plus the forest of documentable nodes.
func Visit(src *pysrc.Source) Module {
	root := src.Root()

	module := Module{
		HasDocstring: docstringPresent(src, root),
		IsEmpty:      moduleIsEmpty(root),
	}
	module.Nodes = collectChildren(src, root)

	return module
}

// collectChildren gathers the documentable definitions beneath n, skipping
// over intermediate statements so that definitions inside conditionals or
// try blocks still attach to the nearest enclosing definition.
func collectChildren(src *pysrc.Source, n sitter.Node) []*Node {
	var nodes []*Node

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)

		switch child.Type() {
		case typeClassDefinition, typeFunctionDefinition:
			nodes = append(nodes, buildNode(src, child, child))
		case typeDecoratedDefinition:
			def := child.ChildByFieldName(fieldDefinition)
			if !def.IsNull() && isDefinition(def) {
				nodes = append(nodes, buildNode(src, def, child))
			}
		default:
			nodes = append(nodes, collectChildren(src, child)...)
		}
	}

	return nodes
}

// buildNode constructs the documentable node for def. outer is the
// decorated_definition wrapper when present, def itself otherwise; it
// bounds the decorator lines skipped by the excuse scan.
func buildNode(src *pysrc.Source, def, outer sitter.Node) *Node {
	hasDoc := docstringPresent(src, def)
	if !hasDoc {
		hasDoc = hasExcuseComment(src, def, outer)
	}

	node := &Node{
		Name:         nodeName(src, def),
		HasDocstring: hasDoc,
		Decorator:    classifyDecorators(src, outer),
	}

	body := def.ChildByFieldName(fieldBody)
	if !body.IsNull() {
		node.Children = collectChildren(src, body)
	}

	return node
}

func isDefinition(n sitter.Node) bool {
	return n.Type() == typeClassDefinition || n.Type() == typeFunctionDefinition
}

// nodeName returns the declared identifier of a definition node.
func nodeName(src *pysrc.Source, def sitter.Node) string {
	name := def.ChildByFieldName(fieldName)
	if name.IsNull() {
		return ""
	}

	return src.NodeText(name)
}

// docstringPresent reports whether the first statement of the given
// module or definition body is a non-empty string literal.
func docstringPresent(src *pysrc.Source, n sitter.Node) bool {
	body := n
	if isDefinition(n) {
		body = n.ChildByFieldName(fieldBody)
		if body.IsNull() {
			return false
		}
	}

	for i := range body.NamedChildCount() {
		stmt := body.NamedChild(i)
		if stmt.Type() == typeComment {
			continue
		}

		if stmt.Type() != typeExpressionStatement || stmt.NamedChildCount() == 0 {
			return false
		}

		expr := stmt.NamedChild(0)
		if expr.Type() != typeString && expr.Type() != typeConcatenatedString {
			return false
		}

		return strings.TrimSpace(stringContent(src, expr)) != ""
	}

	return false
}

// stringContent concatenates the literal content parts of a string node,
// excluding quote delimiters and prefixes.
func stringContent(src *pysrc.Source, n sitter.Node) string {
	if n.Type() == typeStringContent {
		return src.NodeText(n)
	}

	var builder strings.Builder
	for i := range n.NamedChildCount() {
		builder.WriteString(stringContent(src, n.NamedChild(i)))
	}

	return builder.String()
}

// moduleIsEmpty reports whether the module body holds zero statements.
// Comments are extras, not statements.
func moduleIsEmpty(root sitter.Node) bool {
	if root.Type() != typeModule {
		return false
	}

	for i := range root.NamedChildCount() {
		if root.NamedChild(i).Type() != typeComment {
			return false
		}
	}

	return true
}
