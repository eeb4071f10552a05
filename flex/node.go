package flex

// maxCachedResultCount bounds the per-node measurement cache. Even deeply
// nested layouts have not been observed to need more than 16 entries.
const maxCachedResultCount = 16

// Layout holds the computed output of a layout pass. measuredDimensions is
// the authoritative per-pass output; dimensions is promoted from it only
// when a full layout, not a mere measurement, was performed.
type Layout struct {
	position   [4]float64
	dimensions [2]float64
	direction  Direction

	computedFlexBasis float64

	// Cached state used to break early when nothing changed between
	// layout passes.
	generationCount     uint32
	lastParentDirection Direction

	nextCachedMeasurementsIndex int
	cachedMeasurements          [maxCachedResultCount]cachedMeasurement
	measuredDimensions          [2]float64

	cachedLayout cachedMeasurement
}

// MeasureFunc computes the content size of a leaf node under the given
// constraints. It must return non-negative finite dimensions and must not
// mutate any node in the tree.
type MeasureFunc func(context any, width float64, widthMode MeasureMode, height float64, heightMode MeasureMode) Size

// PrintFunc emits a node's identification through the logger; used by the
// tree printer.
type PrintFunc func(context any)

// Node is a box in the layout tree. It owns its style, its computed
// layout, and its ordered child list; the parent pointer is a non-owning
// back-reference used for dirty propagation.
type Node struct {
	style      Style
	layout     Layout
	lineIndex  int
	parent     *Node
	children   []*Node
	isDirty    bool
	isTextNode bool

	hasNewLayout bool

	// nextChild threads the transient relative/absolute child lists built
	// during a single layout activation.
	nextChild *Node

	measure MeasureFunc
	print   PrintFunc
	context any
}

var nodeInstanceCount int

// NodeInstanceCount returns the number of live nodes, for leak checks.
func NodeInstanceCount() int {
	return nodeInstanceCount
}

// NewNode creates a node with default style values.
func NewNode() *Node {
	nodeInstanceCount++

	n := &Node{
		hasNewLayout: true,
	}

	n.style.flexBasis = Undefined

	n.style.alignItems = AlignStretch
	n.style.alignContent = AlignFlexStart

	n.style.direction = DirectionInherit
	n.style.flexDirection = FlexDirectionColumn

	n.style.overflow = OverflowVisible

	// Some of the fields default to undefined and not 0.
	n.style.dimensions[DimensionWidth] = Undefined
	n.style.dimensions[DimensionHeight] = Undefined
	n.style.minDimensions[DimensionWidth] = Undefined
	n.style.minDimensions[DimensionHeight] = Undefined
	n.style.maxDimensions[DimensionWidth] = Undefined
	n.style.maxDimensions[DimensionHeight] = Undefined

	for edge := EdgeLeft; edge < edgeCount; edge++ {
		n.style.position[edge] = Undefined
		n.style.margin[edge] = Undefined
		n.style.padding[edge] = Undefined
		n.style.border[edge] = Undefined
	}

	n.layout.dimensions[DimensionWidth] = Undefined
	n.layout.dimensions[DimensionHeight] = Undefined

	// Such that the comparison is always going to be false.
	n.layout.lastParentDirection = directionInvalid
	n.layout.computedFlexBasis = Undefined

	n.layout.measuredDimensions[DimensionWidth] = Undefined
	n.layout.measuredDimensions[DimensionHeight] = Undefined
	n.layout.cachedLayout.widthMeasureMode = measureModeInvalid
	n.layout.cachedLayout.heightMeasureMode = measureModeInvalid

	return n
}

// Free releases a node. The node must have no children and no parent.
func (n *Node) Free() {
	n.children = nil
	nodeInstanceCount--
}

// FreeRecursive removes and frees every descendant, then the node itself.
func (n *Node) FreeRecursive() {
	for n.ChildCount() > 0 {
		child := n.Child(0)
		n.RemoveChild(child)
		child.FreeRecursive()
	}
	n.Free()
}

func (n *Node) markDirty() {
	if !n.isDirty {
		n.isDirty = true
		n.layout.computedFlexBasis = Undefined
		if n.parent != nil {
			n.parent.markDirty()
		}
	}
}

// InsertChild inserts a child at the given index. The child must not
// already have a parent.
func (n *Node) InsertChild(child *Node, index int) {
	assertCond(child.parent == nil, "child already has a parent, it must be removed first")

	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.markDirty()
}

// RemoveChild removes a child from this node's child list.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			n.markDirty()
			return
		}
	}
}

// Child returns the child at the given index.
func (n *Node) Child(index int) *Node {
	return n.children[index]
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// MarkDirty flags the node as needing re-measurement. Only leaf nodes with
// a measure callback may be marked manually; everything else is dirtied
// through style mutation.
func (n *Node) MarkDirty() {
	assertCond(n.measure != nil && n.ChildCount() == 0,
		"only leaf nodes with custom measure functions should manually mark themselves as dirty")
	n.markDirty()
}

// IsDirty reports whether the node's cached layout is known stale.
func (n *Node) IsDirty() bool {
	return n.isDirty
}

// HasNewLayout reports whether the node was laid out since the flag was
// last cleared.
func (n *Node) HasNewLayout() bool {
	return n.hasNewLayout
}

// SetHasNewLayout sets the consumed-layout flag.
func (n *Node) SetHasNewLayout(hasNewLayout bool) {
	n.hasNewLayout = hasNewLayout
}

// SetMeasureFunc sets the measure callback. Only childless nodes invoke it.
func (n *Node) SetMeasureFunc(measure MeasureFunc) {
	n.measure = measure
}

// MeasureFunc returns the measure callback.
func (n *Node) MeasureFunc() MeasureFunc {
	return n.measure
}

// SetPrintFunc sets the print callback used by the tree printer.
func (n *Node) SetPrintFunc(print PrintFunc) {
	n.print = print
}

// PrintFunc returns the print callback.
func (n *Node) PrintFunc() PrintFunc {
	return n.print
}

// SetContext attaches an opaque value passed back to callbacks.
func (n *Node) SetContext(context any) {
	n.context = context
}

// Context returns the opaque callback value.
func (n *Node) Context() any {
	return n.context
}

// SetIsTextNode flags the node as text, enabling the text-specific cache
// heuristics.
func (n *Node) SetIsTextNode(isTextNode bool) {
	n.isTextNode = isTextNode
}

// IsTextNode reports whether the node is flagged as text.
func (n *Node) IsTextNode() bool {
	return n.isTextNode
}

// floatsDiffer reports whether a style write changes the stored value.
// Two undefined values count as equal.
func floatsDiffer(old, new float64) bool {
	if IsUndefined(old) && IsUndefined(new) {
		return false
	}
	return old != new
}

// SetFlex applies the flex shorthand: a positive value grows from a zero
// basis, a negative value shrinks, zero or undefined resets all three
// components.
func (n *Node) SetFlex(flex float64) {
	switch {
	case IsUndefined(flex) || flex == 0:
		n.SetFlexGrow(0)
		n.SetFlexShrink(0)
		n.SetFlexBasis(Undefined)
	case flex > 0:
		n.SetFlexGrow(flex)
		n.SetFlexShrink(0)
		n.SetFlexBasis(0)
	default:
		n.SetFlexGrow(0)
		n.SetFlexShrink(-flex)
		n.SetFlexBasis(Undefined)
	}
}

// Flex returns the flex shorthand view of grow/shrink.
func (n *Node) Flex() float64 {
	if n.style.flexGrow > 0 {
		return n.style.flexGrow
	} else if n.style.flexShrink > 0 {
		return -n.style.flexShrink
	}
	return 0
}

// SetDirection sets the writing direction.
func (n *Node) SetDirection(direction Direction) {
	if n.style.direction != direction {
		n.style.direction = direction
		n.markDirty()
	}
}

// Direction returns the writing direction style value.
func (n *Node) Direction() Direction {
	return n.style.direction
}

// SetFlexDirection sets the main-axis direction.
func (n *Node) SetFlexDirection(flexDirection FlexDirection) {
	if n.style.flexDirection != flexDirection {
		n.style.flexDirection = flexDirection
		n.markDirty()
	}
}

// FlexDirection returns the main-axis direction.
func (n *Node) FlexDirection() FlexDirection {
	return n.style.flexDirection
}

// SetJustifyContent sets main-axis justification.
func (n *Node) SetJustifyContent(justify Justify) {
	if n.style.justifyContent != justify {
		n.style.justifyContent = justify
		n.markDirty()
	}
}

// JustifyContent returns main-axis justification.
func (n *Node) JustifyContent() Justify {
	return n.style.justifyContent
}

// SetAlignContent sets multi-line cross-axis alignment.
func (n *Node) SetAlignContent(align Align) {
	if n.style.alignContent != align {
		n.style.alignContent = align
		n.markDirty()
	}
}

// AlignContent returns multi-line cross-axis alignment.
func (n *Node) AlignContent() Align {
	return n.style.alignContent
}

// SetAlignItems sets the default cross-axis alignment of children.
func (n *Node) SetAlignItems(align Align) {
	if n.style.alignItems != align {
		n.style.alignItems = align
		n.markDirty()
	}
}

// AlignItems returns the default cross-axis alignment of children.
func (n *Node) AlignItems() Align {
	return n.style.alignItems
}

// SetAlignSelf overrides the parent's alignItems for this node.
func (n *Node) SetAlignSelf(align Align) {
	if n.style.alignSelf != align {
		n.style.alignSelf = align
		n.markDirty()
	}
}

// AlignSelf returns the per-node cross-axis alignment override.
func (n *Node) AlignSelf() Align {
	return n.style.alignSelf
}

// SetPositionType switches the node between relative and absolute layout.
func (n *Node) SetPositionType(positionType PositionType) {
	if n.style.positionType != positionType {
		n.style.positionType = positionType
		n.markDirty()
	}
}

// PositionType returns the position type.
func (n *Node) PositionType() PositionType {
	return n.style.positionType
}

// SetFlexWrap sets line wrapping behaviour.
func (n *Node) SetFlexWrap(wrap Wrap) {
	if n.style.flexWrap != wrap {
		n.style.flexWrap = wrap
		n.markDirty()
	}
}

// FlexWrap returns line wrapping behaviour.
func (n *Node) FlexWrap() Wrap {
	return n.style.flexWrap
}

// SetOverflow sets the overflow behaviour.
func (n *Node) SetOverflow(overflow Overflow) {
	if n.style.overflow != overflow {
		n.style.overflow = overflow
		n.markDirty()
	}
}

// Overflow returns the overflow behaviour.
func (n *Node) Overflow() Overflow {
	return n.style.overflow
}

// SetFlexGrow sets the grow factor.
func (n *Node) SetFlexGrow(flexGrow float64) {
	if floatsDiffer(n.style.flexGrow, flexGrow) {
		n.style.flexGrow = flexGrow
		n.markDirty()
	}
}

// FlexGrow returns the grow factor.
func (n *Node) FlexGrow() float64 {
	return n.style.flexGrow
}

// SetFlexShrink sets the shrink factor.
func (n *Node) SetFlexShrink(flexShrink float64) {
	if floatsDiffer(n.style.flexShrink, flexShrink) {
		n.style.flexShrink = flexShrink
		n.markDirty()
	}
}

// FlexShrink returns the shrink factor.
func (n *Node) FlexShrink() float64 {
	return n.style.flexShrink
}

// SetFlexBasis sets the hypothetical main-axis size before flexing.
func (n *Node) SetFlexBasis(flexBasis float64) {
	if floatsDiffer(n.style.flexBasis, flexBasis) {
		n.style.flexBasis = flexBasis
		n.markDirty()
	}
}

// FlexBasis returns the hypothetical main-axis size before flexing.
func (n *Node) FlexBasis() float64 {
	return n.style.flexBasis
}

// SetPosition sets a position offset for an edge (concrete or shorthand).
func (n *Node) SetPosition(edge Edge, position float64) {
	if floatsDiffer(n.style.position[edge], position) {
		n.style.position[edge] = position
		n.markDirty()
	}
}

// Position returns the resolved position offset for a concrete edge.
func (n *Node) Position(edge Edge) float64 {
	return computedEdgeValue(&n.style.position, edge, Undefined)
}

// SetMargin sets the margin for an edge (concrete or shorthand).
func (n *Node) SetMargin(edge Edge, margin float64) {
	if floatsDiffer(n.style.margin[edge], margin) {
		n.style.margin[edge] = margin
		n.markDirty()
	}
}

// Margin returns the resolved margin for a concrete edge.
func (n *Node) Margin(edge Edge) float64 {
	return computedEdgeValue(&n.style.margin, edge, 0)
}

// SetPadding sets the padding for an edge (concrete or shorthand).
func (n *Node) SetPadding(edge Edge, padding float64) {
	if floatsDiffer(n.style.padding[edge], padding) {
		n.style.padding[edge] = padding
		n.markDirty()
	}
}

// Padding returns the resolved padding for a concrete edge.
func (n *Node) Padding(edge Edge) float64 {
	return computedEdgeValue(&n.style.padding, edge, 0)
}

// SetBorder sets the border width for an edge (concrete or shorthand).
func (n *Node) SetBorder(edge Edge, border float64) {
	if floatsDiffer(n.style.border[edge], border) {
		n.style.border[edge] = border
		n.markDirty()
	}
}

// Border returns the resolved border width for a concrete edge.
func (n *Node) Border(edge Edge) float64 {
	return computedEdgeValue(&n.style.border, edge, 0)
}

// SetWidth sets the style width.
func (n *Node) SetWidth(width float64) {
	if floatsDiffer(n.style.dimensions[DimensionWidth], width) {
		n.style.dimensions[DimensionWidth] = width
		n.markDirty()
	}
}

// Width returns the style width.
func (n *Node) Width() float64 {
	return n.style.dimensions[DimensionWidth]
}

// SetHeight sets the style height.
func (n *Node) SetHeight(height float64) {
	if floatsDiffer(n.style.dimensions[DimensionHeight], height) {
		n.style.dimensions[DimensionHeight] = height
		n.markDirty()
	}
}

// Height returns the style height.
func (n *Node) Height() float64 {
	return n.style.dimensions[DimensionHeight]
}

// SetMinWidth sets the minimum width constraint.
func (n *Node) SetMinWidth(minWidth float64) {
	if floatsDiffer(n.style.minDimensions[DimensionWidth], minWidth) {
		n.style.minDimensions[DimensionWidth] = minWidth
		n.markDirty()
	}
}

// MinWidth returns the minimum width constraint.
func (n *Node) MinWidth() float64 {
	return n.style.minDimensions[DimensionWidth]
}

// SetMinHeight sets the minimum height constraint.
func (n *Node) SetMinHeight(minHeight float64) {
	if floatsDiffer(n.style.minDimensions[DimensionHeight], minHeight) {
		n.style.minDimensions[DimensionHeight] = minHeight
		n.markDirty()
	}
}

// MinHeight returns the minimum height constraint.
func (n *Node) MinHeight() float64 {
	return n.style.minDimensions[DimensionHeight]
}

// SetMaxWidth sets the maximum width constraint.
func (n *Node) SetMaxWidth(maxWidth float64) {
	if floatsDiffer(n.style.maxDimensions[DimensionWidth], maxWidth) {
		n.style.maxDimensions[DimensionWidth] = maxWidth
		n.markDirty()
	}
}

// MaxWidth returns the maximum width constraint.
func (n *Node) MaxWidth() float64 {
	return n.style.maxDimensions[DimensionWidth]
}

// SetMaxHeight sets the maximum height constraint.
func (n *Node) SetMaxHeight(maxHeight float64) {
	if floatsDiffer(n.style.maxDimensions[DimensionHeight], maxHeight) {
		n.style.maxDimensions[DimensionHeight] = maxHeight
		n.markDirty()
	}
}

// MaxHeight returns the maximum height constraint.
func (n *Node) MaxHeight() float64 {
	return n.style.maxDimensions[DimensionHeight]
}

// LayoutLeft returns the computed left offset relative to the parent.
func (n *Node) LayoutLeft() float64 {
	return n.layout.position[EdgeLeft]
}

// LayoutTop returns the computed top offset relative to the parent.
func (n *Node) LayoutTop() float64 {
	return n.layout.position[EdgeTop]
}

// LayoutRight returns the computed right offset relative to the parent.
func (n *Node) LayoutRight() float64 {
	return n.layout.position[EdgeRight]
}

// LayoutBottom returns the computed bottom offset relative to the parent.
func (n *Node) LayoutBottom() float64 {
	return n.layout.position[EdgeBottom]
}

// LayoutWidth returns the computed width.
func (n *Node) LayoutWidth() float64 {
	return n.layout.dimensions[DimensionWidth]
}

// LayoutHeight returns the computed height.
func (n *Node) LayoutHeight() float64 {
	return n.layout.dimensions[DimensionHeight]
}

// LayoutDirection returns the resolved writing direction of the last pass.
func (n *Node) LayoutDirection() Direction {
	return n.layout.direction
}

// LineIndex returns the flex line this node was packed into during the
// last layout of its parent.
func (n *Node) LineIndex() int {
	return n.lineIndex
}

// MeasuredWidth returns the last pass's measured width.
func (n *Node) MeasuredWidth() float64 {
	return n.layout.measuredDimensions[DimensionWidth]
}

// MeasuredHeight returns the last pass's measured height.
func (n *Node) MeasuredHeight() float64 {
	return n.layout.measuredDimensions[DimensionHeight]
}
