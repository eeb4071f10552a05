package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/flexkit/flex"
)

func TestParseBuildsTree(t *testing.T) {
	root, err := ParseString(`<body style="width: 300px; height: 100px; flex-direction: row">
		<div id="a" style="flex-grow: 1; flex-basis: 0"></div>
		<div id="b" style="flex-grow: 1; flex-basis: 0"></div>
		<div id="c" style="flex-grow: 1; flex-basis: 0"></div>
	</body>`)
	require.NoError(t, err)
	defer root.FreeRecursive()

	require.Equal(t, 3, root.ChildCount())
	assert.Equal(t, flex.FlexDirectionRow, root.FlexDirection())
	assert.Equal(t, 300.0, root.Width())

	meta := root.Child(0).Context().(*Meta)
	assert.Equal(t, "div", meta.Tag)
	assert.Equal(t, "a", meta.ID)

	flex.CalculateLayout(root, flex.Undefined, flex.Undefined, flex.DirectionLTR)

	assert.Equal(t, 100.0, root.Child(0).LayoutWidth())
	assert.Equal(t, 100.0, root.Child(1).LayoutLeft())
	assert.Equal(t, 200.0, root.Child(2).LayoutLeft())
}

func TestParseStyleProperties(t *testing.T) {
	root, err := ParseString(`<body>
		<div style="position: absolute; left: 10px; top: 20px; width: 30px; height: 40px"></div>
		<div style="margin: 4px; padding-horizontal: 6px; border-width: 1px; max-width: 120px"></div>
		<div style="flex: 2; align-self: center; overflow: scroll"></div>
	</body>`)
	require.NoError(t, err)
	defer root.FreeRecursive()

	abs := root.Child(0)
	assert.Equal(t, flex.PositionAbsolute, abs.PositionType())
	assert.Equal(t, 10.0, abs.Position(flex.EdgeLeft))
	assert.Equal(t, 20.0, abs.Position(flex.EdgeTop))

	boxed := root.Child(1)
	assert.Equal(t, 4.0, boxed.Margin(flex.EdgeTop))
	assert.Equal(t, 6.0, boxed.Padding(flex.EdgeLeft))
	assert.Equal(t, 0.0, boxed.Padding(flex.EdgeTop))
	assert.Equal(t, 1.0, boxed.Border(flex.EdgeBottom))
	assert.Equal(t, 120.0, boxed.MaxWidth())

	flexed := root.Child(2)
	assert.Equal(t, 2.0, flexed.FlexGrow())
	assert.Equal(t, 0.0, flexed.FlexBasis())
	assert.Equal(t, flex.AlignCenter, flexed.AlignSelf())
	assert.Equal(t, flex.OverflowScroll, flexed.Overflow())
}

func TestParseTextBecomesMeasurableLeaf(t *testing.T) {
	root, err := ParseString(`<body style="width: 500px"><div style="align-items: flex-start">hello</div></body>`)
	require.NoError(t, err)
	defer root.FreeRecursive()

	div := root.Child(0)
	require.Equal(t, 1, div.ChildCount())

	text := div.Child(0)
	assert.True(t, text.IsTextNode())
	meta := text.Context().(*Meta)
	assert.Equal(t, "#text", meta.Tag)
	assert.Equal(t, "hello", meta.Text)

	flex.CalculateLayout(root, flex.Undefined, flex.Undefined, flex.DirectionLTR)

	// Five characters at 16px * 0.6 per cell.
	assert.InDelta(t, 48, text.LayoutWidth(), 0.001)
	assert.InDelta(t, 19.2, text.LayoutHeight(), 0.001)
}

func TestTextWrapsUnderConstrainedWidth(t *testing.T) {
	size := textMeasure(&Meta{Text: "aaaaaaaaaa"}, 48, flex.MeasureModeAtMost,
		flex.Undefined, flex.MeasureModeUndefined)

	// Ten characters at 9.6px each wrap onto two 5-character lines.
	assert.InDelta(t, 48, size.Width, 0.001)
	assert.InDelta(t, 38.4, size.Height, 0.001)
}

func TestParseRejectsMalformedStyle(t *testing.T) {
	_, err := ParseString(`<body><div style="width 10px"></div></body>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "markup: style")

	_, err = ParseString(`<body><div style="width: abc"></div></body>`)
	require.Error(t, err)

	_, err = ParseString(`<body><div style="flex-direction: diagonal"></div></body>`)
	require.Error(t, err)
}

func TestParseIgnoresNonLayoutProperties(t *testing.T) {
	root, err := ParseString(`<body><div style="color: red; background: blue; width: 10px"></div></body>`)
	require.NoError(t, err)
	defer root.FreeRecursive()

	assert.Equal(t, 10.0, root.Child(0).Width())
}

func TestParseSkipsScriptAndStyleElements(t *testing.T) {
	root, err := ParseString(`<body><script>var x = 1;</script><div></div></body>`)
	require.NoError(t, err)
	defer root.FreeRecursive()

	require.Equal(t, 1, root.ChildCount())
	assert.Equal(t, "div", root.Child(0).Context().(*Meta).Tag)
}
