package flex

import (
	"fmt"
	"strings"
)

// Logger receives all printer output. The format string follows fmt rules.
type Logger func(format string, args ...any)

var logger Logger = func(format string, args ...any) {
	fmt.Printf(format, args...)
}

// SetLogger replaces the process-wide logger used by the printer and the
// engine's debug output. Passing nil restores the stdout default.
func SetLogger(l Logger) {
	if l == nil {
		logger = func(format string, args ...any) { fmt.Printf(format, args...) }
		return
	}
	logger = l
}

func logPrintf(format string, args ...any) {
	logger(format, args...)
}

func spacer(level int) string {
	const width = 60
	if level > width {
		level = width
	}
	return strings.Repeat(" ", level)
}

// PrintOptions selects which node facets the printer emits.
type PrintOptions int

const (
	PrintOptionsLayout PrintOptions = 1 << iota
	PrintOptionsStyle
	PrintOptionsChildren
)

func indent(n int) {
	for i := 0; i < n; i++ {
		logger("  ")
	}
}

func printNumberIfNotZero(str string, number float64) {
	if !eq(number, 0) {
		logger("%s: %g, ", str, number)
	}
}

func printNumberIfNotUndefined(str string, number float64) {
	if !IsUndefined(number) {
		logger("%s: %g, ", str, number)
	}
}

func eqFour(four *[edgeCount]float64) bool {
	return eq(four[0], four[1]) && eq(four[0], four[2]) && eq(four[0], four[3])
}

func printNode(node *Node, options PrintOptions, level int) {
	indent(level)
	logger("{")

	if node.print != nil {
		node.print(node.context)
	}

	if options&PrintOptionsLayout != 0 {
		logger("layout: {")
		logger("width: %g, ", node.layout.dimensions[DimensionWidth])
		logger("height: %g, ", node.layout.dimensions[DimensionHeight])
		logger("top: %g, ", node.layout.position[EdgeTop])
		logger("left: %g", node.layout.position[EdgeLeft])
		logger("}, ")
	}

	if options&PrintOptionsStyle != 0 {
		logger("flexDirection: '%s', ", node.style.flexDirection)

		if node.style.justifyContent != JustifyFlexStart {
			logger("justifyContent: '%s', ", node.style.justifyContent)
		}
		if node.style.alignItems != AlignStretch {
			logger("alignItems: '%s', ", node.style.alignItems)
		}
		if node.style.alignContent != AlignFlexStart {
			logger("alignContent: '%s', ", node.style.alignContent)
		}
		if node.style.alignSelf != AlignAuto {
			logger("alignSelf: '%s', ", node.style.alignSelf)
		}

		printNumberIfNotZero("flexGrow", node.style.flexGrow)
		printNumberIfNotZero("flexShrink", node.style.flexShrink)
		printNumberIfNotUndefined("flexBasis", node.style.flexBasis)

		if node.style.overflow != OverflowVisible {
			logger("overflow: '%s', ", node.style.overflow)
		}

		if eqFour(&node.style.margin) {
			printNumberIfNotZero("margin", computedEdgeValue(&node.style.margin, EdgeLeft, 0))
		} else {
			printNumberIfNotZero("marginLeft", computedEdgeValue(&node.style.margin, EdgeLeft, 0))
			printNumberIfNotZero("marginRight", computedEdgeValue(&node.style.margin, EdgeRight, 0))
			printNumberIfNotZero("marginTop", computedEdgeValue(&node.style.margin, EdgeTop, 0))
			printNumberIfNotZero("marginBottom", computedEdgeValue(&node.style.margin, EdgeBottom, 0))
			printNumberIfNotZero("marginStart", computedEdgeValue(&node.style.margin, EdgeStart, 0))
			printNumberIfNotZero("marginEnd", computedEdgeValue(&node.style.margin, EdgeEnd, 0))
		}

		if eqFour(&node.style.padding) {
			printNumberIfNotZero("padding", computedEdgeValue(&node.style.padding, EdgeLeft, 0))
		} else {
			printNumberIfNotZero("paddingLeft", computedEdgeValue(&node.style.padding, EdgeLeft, 0))
			printNumberIfNotZero("paddingRight", computedEdgeValue(&node.style.padding, EdgeRight, 0))
			printNumberIfNotZero("paddingTop", computedEdgeValue(&node.style.padding, EdgeTop, 0))
			printNumberIfNotZero("paddingBottom", computedEdgeValue(&node.style.padding, EdgeBottom, 0))
			printNumberIfNotZero("paddingStart", computedEdgeValue(&node.style.padding, EdgeStart, 0))
			printNumberIfNotZero("paddingEnd", computedEdgeValue(&node.style.padding, EdgeEnd, 0))
		}

		if eqFour(&node.style.border) {
			printNumberIfNotZero("borderWidth", computedEdgeValue(&node.style.border, EdgeLeft, 0))
		} else {
			printNumberIfNotZero("borderLeftWidth", computedEdgeValue(&node.style.border, EdgeLeft, 0))
			printNumberIfNotZero("borderRightWidth", computedEdgeValue(&node.style.border, EdgeRight, 0))
			printNumberIfNotZero("borderTopWidth", computedEdgeValue(&node.style.border, EdgeTop, 0))
			printNumberIfNotZero("borderBottomWidth", computedEdgeValue(&node.style.border, EdgeBottom, 0))
			printNumberIfNotZero("borderStartWidth", computedEdgeValue(&node.style.border, EdgeStart, 0))
			printNumberIfNotZero("borderEndWidth", computedEdgeValue(&node.style.border, EdgeEnd, 0))
		}

		printNumberIfNotUndefined("width", node.style.dimensions[DimensionWidth])
		printNumberIfNotUndefined("height", node.style.dimensions[DimensionHeight])
		printNumberIfNotUndefined("maxWidth", node.style.maxDimensions[DimensionWidth])
		printNumberIfNotUndefined("maxHeight", node.style.maxDimensions[DimensionHeight])
		printNumberIfNotUndefined("minWidth", node.style.minDimensions[DimensionWidth])
		printNumberIfNotUndefined("minHeight", node.style.minDimensions[DimensionHeight])

		if node.style.positionType == PositionAbsolute {
			logger("position: 'absolute', ")
		}

		printNumberIfNotUndefined("left", computedEdgeValue(&node.style.position, EdgeLeft, Undefined))
		printNumberIfNotUndefined("right", computedEdgeValue(&node.style.position, EdgeRight, Undefined))
		printNumberIfNotUndefined("top", computedEdgeValue(&node.style.position, EdgeTop, Undefined))
		printNumberIfNotUndefined("bottom", computedEdgeValue(&node.style.position, EdgeBottom, Undefined))
	}

	if options&PrintOptionsChildren != 0 && node.ChildCount() > 0 {
		logger("children: [\n")
		for i := 0; i < node.ChildCount(); i++ {
			printNode(node.Child(i), options, level+1)
		}
		indent(level)
		logger("]},\n")
	} else {
		logger("},\n")
	}
}

// NodePrint writes a node tree through the logger.
func NodePrint(node *Node, options PrintOptions) {
	printNode(node, options, 0)
}
