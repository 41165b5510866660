package visitor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstrcov/docstrcov/pkg/pysrc"
)

const testFileName = "sample.py"

func parseSource(t *testing.T, source string) *pysrc.Source {
	t.Helper()

	src, err := pysrc.Parse(context.Background(), testFileName, []byte(source))
	require.NoError(t, err)
	t.Cleanup(src.Close)

	return src
}

func TestVisit_ModuleDocstringOnly(t *testing.T) {
	src := parseSource(t, `"""doc"""`+"\n")

	module := Visit(src)

	assert.True(t, module.HasDocstring)
	assert.False(t, module.IsEmpty)
	assert.Empty(t, module.Nodes)
}

func TestVisit_EmptyModule(t *testing.T) {
	src := parseSource(t, "")

	module := Visit(src)

	assert.False(t, module.HasDocstring)
	assert.True(t, module.IsEmpty)
}

func TestVisit_CommentOnlyModuleIsEmpty(t *testing.T) {
	src := parseSource(t, "# just a comment\n\n# another\n")

	module := Visit(src)

	assert.False(t, module.HasDocstring)
	assert.True(t, module.IsEmpty)
}

func TestVisit_WhitespaceDocstringDoesNotCount(t *testing.T) {
	src := parseSource(t, "\"\"\"   \"\"\"\n\ndef foo():\n    pass\n")

	module := Visit(src)

	assert.False(t, module.HasDocstring)
	require.Len(t, module.Nodes, 1)
	assert.Equal(t, "foo", module.Nodes[0].Name)
	assert.False(t, module.Nodes[0].HasDocstring)
}

func TestVisit_FunctionsAndClassForest(t *testing.T) {
	source := `"""module"""


def foo():
    """documented"""


def bar():
    pass


class FooBar:
    """class doc"""

    def __init__(self):
        pass

    def method(self):
        """method doc"""
`
	src := parseSource(t, source)

	module := Visit(src)

	assert.True(t, module.HasDocstring)
	require.Len(t, module.Nodes, 3)

	assert.Equal(t, "foo", module.Nodes[0].Name)
	assert.True(t, module.Nodes[0].HasDocstring)

	assert.Equal(t, "bar", module.Nodes[1].Name)
	assert.False(t, module.Nodes[1].HasDocstring)

	class := module.Nodes[2]
	assert.Equal(t, "FooBar", class.Name)
	assert.True(t, class.HasDocstring)
	require.Len(t, class.Children, 2)
	assert.Equal(t, "__init__", class.Children[0].Name)
	assert.False(t, class.Children[0].HasDocstring)
	assert.Equal(t, "method", class.Children[1].Name)
	assert.True(t, class.Children[1].HasDocstring)
}

func TestVisit_NestedFunctions(t *testing.T) {
	source := `def outer():
    """outer doc"""

    def inner():
        pass

    return inner
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	outer := module.Nodes[0]
	assert.Equal(t, "outer", outer.Name)
	require.Len(t, outer.Children, 1)
	assert.Equal(t, "inner", outer.Children[0].Name)
	assert.False(t, outer.Children[0].HasDocstring)
}

func TestVisit_DefinitionInsideConditional(t *testing.T) {
	source := `import sys

if sys.platform == "linux":
    def platform_specific():
        pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.Equal(t, "platform_specific", module.Nodes[0].Name)
}

func TestVisit_ExcuseComments(t *testing.T) {
	source := `"""module"""


# docstr-coverage:excuse ` + "`no one is reading this anyways`" + `
class FooBar:

    # docstr-coverage : excuse ` + "`I'm super lazy`" + `
    def __init__(self):
        pass

    #   docstr-coverage:excuse ` + "`really`" + `
    @abc.abstractmethod
    def function(self):
        pass

    # docstr-coverage:inherited
    def inherited_one(self):
        pass

    # a plain comment is not an excuse
    def undocumented(self):
        pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	class := module.Nodes[0]
	assert.True(t, class.HasDocstring)

	require.Len(t, class.Children, 4)
	assert.True(t, class.Children[0].HasDocstring, "excused __init__")
	assert.True(t, class.Children[1].HasDocstring, "excuse above decorator")
	assert.True(t, class.Children[2].HasDocstring, "inherit excuse")
	assert.False(t, class.Children[3].HasDocstring, "plain comment is no excuse")
}

func TestVisit_CommentBetweenDecoratorAndDefBlocksExcuse(t *testing.T) {
	source := `"""module"""


# docstr-coverage:inherit
@custom
# just a note
def foo():
    pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.False(t, module.Nodes[0].HasDocstring, "plain comment directly above def decides")
}

func TestVisit_ExcuseBetweenDecoratorsCounts(t *testing.T) {
	source := `@custom
# docstr-coverage:inherit
def foo():
    pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.True(t, module.Nodes[0].HasDocstring)
}

func TestVisit_ExcuseAboveMultiLineDecorator(t *testing.T) {
	source := `# docstr-coverage:excuse ` + "`wrapped`" + `
@functools.wraps(
    target,
)
def foo():
    pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.True(t, module.Nodes[0].HasDocstring)
}

func TestVisit_ExcuseSeparatedByBlankLines(t *testing.T) {
	source := `# docstr-coverage:inherit


def foo():
    pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.True(t, module.Nodes[0].HasDocstring)
}

func TestVisit_ExcuseBlockedByCode(t *testing.T) {
	source := `# docstr-coverage:inherit
x = 1


def foo():
    pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.False(t, module.Nodes[0].HasDocstring)
}

func TestVisit_ExcuseWithoutBacktickReasonRejected(t *testing.T) {
	source := `# docstr-coverage:excuse forgot the backticks
def foo():
    pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	assert.False(t, module.Nodes[0].HasDocstring)
}

func TestVisit_DecoratorClassification(t *testing.T) {
	source := `class FooBar:
    @property
    def value(self):
        pass

    @value.setter
    def value(self, new_value):
        pass

    @value.deleter
    def value(self):
        pass

    @staticmethod
    def helper():
        pass

    @functools.lru_cache()
    def cached(self):
        pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	children := module.Nodes[0].Children
	require.Len(t, children, 5)

	assert.Equal(t, DecoratorProperty, children[0].Decorator)
	assert.Equal(t, DecoratorSetter, children[1].Decorator)
	assert.Equal(t, DecoratorDeleter, children[2].Decorator)
	assert.Equal(t, DecoratorNone, children[3].Decorator)
	assert.Equal(t, DecoratorNone, children[4].Decorator)
}

func TestVisit_FirstRecognizedDecoratorWins(t *testing.T) {
	source := `class FooBar:
    @custom
    @property
    def value(self):
        pass

    @prop.setter
    @other.deleter
    def value(self, new_value):
        pass
`
	src := parseSource(t, source)

	module := Visit(src)

	require.Len(t, module.Nodes, 1)
	children := module.Nodes[0].Children
	require.Len(t, children, 2)
	assert.Equal(t, DecoratorProperty, children[0].Decorator)
	assert.Equal(t, DecoratorSetter, children[1].Decorator)
}

func TestParse_SyntaxErrorSurfaced(t *testing.T) {
	_, err := pysrc.Parse(context.Background(), testFileName, []byte("def broken(:\n"))

	require.Error(t, err)

	var parseErr *pysrc.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, testFileName, parseErr.Path)
}
