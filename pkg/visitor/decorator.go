package visitor

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/docstrcov/docstrcov/pkg/pysrc"
)

// Decorator is the classification of the most relevant recognized
// decorator attached to a definition.
type Decorator int

const (
	// DecoratorNone means no recognized decorator is attached.
	DecoratorNone Decorator = iota
	// DecoratorProperty marks property getters.
	DecoratorProperty
	// DecoratorSetter marks property setters.
	DecoratorSetter
	// DecoratorDeleter marks property deleters.
	DecoratorDeleter
)

// String returns the decorator tag in its at-prefixed source form.
func (d Decorator) String() string {
	switch d {
	case DecoratorProperty:
		return "@property"
	case DecoratorSetter:
		return "@setter"
	case DecoratorDeleter:
		return "@deleter"
	default:
		return ""
	}
}

// Tree-sitter node types for decorator expressions.
const (
	typeDecorator  = "decorator"
	typeIdentifier = "identifier"
	typeAttribute  = "attribute"
	typeCall       = "call"
)

// Field names on attribute and call expressions.
const (
	fieldAttribute = "attribute"
	fieldFunction  = "function"
)

// Recognized decorator names.
const (
	namePropertyDecorator = "property"
	nameSetterDecorator   = "setter"
	nameDeleterDecorator  = "deleter"
)

// decoratorShape is the tagged variant for decorator expression forms.
type decoratorShape int

const (
	shapeOther decoratorShape = iota
	shapePlainName
	shapeAttributeAccess
	shapeCall
)

// classifyDecorators inspects the decorators attached to outer, in
// declaration order, and returns the first recognized classification.
func classifyDecorators(src *pysrc.Source, outer sitter.Node) Decorator {
	if outer.Type() != typeDecoratedDefinition {
		return DecoratorNone
	}

	for i := range outer.NamedChildCount() {
		child := outer.NamedChild(i)
		if child.Type() != typeDecorator {
			continue
		}

		if child.NamedChildCount() == 0 {
			continue
		}

		kind := classifyExpression(src, child.NamedChild(0))
		if kind != DecoratorNone {
			return kind
		}
	}

	return DecoratorNone
}

// classifyExpression maps one decorator expression to a Decorator.
// Calls are unwrapped to their callee; unrecognized shapes yield none.
func classifyExpression(src *pysrc.Source, expr sitter.Node) Decorator {
	switch shapeOf(expr) {
	case shapePlainName:
		if src.NodeText(expr) == namePropertyDecorator {
			return DecoratorProperty
		}
	case shapeAttributeAccess:
		attr := expr.ChildByFieldName(fieldAttribute)
		if attr.IsNull() {
			return DecoratorNone
		}

		switch src.NodeText(attr) {
		case nameSetterDecorator:
			return DecoratorSetter
		case nameDeleterDecorator:
			return DecoratorDeleter
		}
	case shapeCall:
		callee := expr.ChildByFieldName(fieldFunction)
		if !callee.IsNull() {
			return classifyExpression(src, callee)
		}
	case shapeOther:
	}

	return DecoratorNone
}

func shapeOf(expr sitter.Node) decoratorShape {
	switch expr.Type() {
	case typeIdentifier:
		return shapePlainName
	case typeAttribute:
		return shapeAttributeAccess
	case typeCall:
		return shapeCall
	default:
		return shapeOther
	}
}
