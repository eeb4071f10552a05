package flex

// Engine holds the cross-pass state of the layout algorithm: the
// generation counter used to invalidate per-node caches, the recursion
// depth used by debug printing, and the print toggles. Scoping this state
// to an Engine value allows disjoint trees to be laid out by separate
// engines; the package-level CalculateLayout uses a shared default.
type Engine struct {
	currentGenerationCount uint32
	depth                  int

	// PrintTree dumps the whole tree after every top-level layout.
	PrintTree bool
	// PrintChanges logs every node visit; PrintSkips additionally logs
	// cache hits.
	PrintChanges bool
	PrintSkips   bool
}

// NewEngine creates an independent layout engine.
func NewEngine() *Engine {
	return &Engine{}
}

var defaultEngine = NewEngine()

// CalculateLayout lays out the tree rooted at node using the shared
// default engine.
func CalculateLayout(node *Node, availableWidth, availableHeight float64, parentDirection Direction) {
	defaultEngine.CalculateLayout(node, availableWidth, availableHeight, parentDirection)
}

// CalculateLayout computes measured dimensions and relative positions for
// every node in the tree. An undefined availability along an axis falls
// back to the root's style dimension (measured exactly) or max dimension
// (measured at most).
func (e *Engine) CalculateLayout(node *Node, availableWidth, availableHeight float64, parentDirection Direction) {
	// Increment the generation count. This forces the recursive routine to
	// visit all dirty nodes at least once; subsequent visits are skipped
	// when the input parameters don't change.
	e.currentGenerationCount++

	width := availableWidth
	height := availableHeight
	widthMeasureMode := MeasureModeUndefined
	heightMeasureMode := MeasureModeUndefined

	if !IsUndefined(width) {
		widthMeasureMode = MeasureModeExactly
	} else if node.isStyleDimDefined(FlexDirectionRow) {
		width = node.style.dimensions[dim[FlexDirectionRow]] + node.marginAxis(FlexDirectionRow)
		widthMeasureMode = MeasureModeExactly
	} else if node.style.maxDimensions[DimensionWidth] >= 0 {
		width = node.style.maxDimensions[DimensionWidth]
		widthMeasureMode = MeasureModeAtMost
	}

	if !IsUndefined(height) {
		heightMeasureMode = MeasureModeExactly
	} else if node.isStyleDimDefined(FlexDirectionColumn) {
		height = node.style.dimensions[dim[FlexDirectionColumn]] + node.marginAxis(FlexDirectionColumn)
		heightMeasureMode = MeasureModeExactly
	} else if node.style.maxDimensions[DimensionHeight] >= 0 {
		height = node.style.maxDimensions[DimensionHeight]
		heightMeasureMode = MeasureModeAtMost
	}

	if e.layoutNodeInternal(node, width, height, parentDirection,
		widthMeasureMode, heightMeasureMode, true, "initial") {
		node.setPosition(node.layout.direction)

		if e.PrintTree {
			NodePrint(node, PrintOptionsLayout|PrintOptionsChildren|PrintOptionsStyle)
		}
	}
}

// layoutNodeInternal wraps layoutNodeImpl with the two-tier cache: it
// decides whether the request is redundant, records fresh results, and
// promotes measured dimensions into the final layout when a full layout
// was requested. Returns true when the subtree was actually computed.
func (e *Engine) layoutNodeInternal(node *Node,
	availableWidth, availableHeight float64,
	parentDirection Direction,
	widthMeasureMode, heightMeasureMode MeasureMode,
	performLayout bool, reason string) bool {

	layout := &node.layout

	e.depth++

	needToVisitNode := (node.isDirty && layout.generationCount != e.currentGenerationCount) ||
		layout.lastParentDirection != parentDirection

	if needToVisitNode {
		// Invalidate the cached results.
		layout.nextCachedMeasurementsIndex = 0
		layout.cachedLayout.widthMeasureMode = measureModeInvalid
		layout.cachedLayout.heightMeasureMode = measureModeInvalid
	}

	var cachedResults *cachedMeasurement
	narrowHeight := false

	// A layout operation is assumed to happen at most once per node per
	// tree layout, so it gets a dedicated slot; measurements may repeat
	// under different constraints and go through the ring. Nodes with
	// measure functions are the most expensive to measure, so their cache
	// lookup uses the compatibility predicate rather than exact equality.
	if node.measure != nil && node.ChildCount() == 0 {
		marginAxisRow := node.marginAxis(FlexDirectionRow)
		marginAxisColumn := node.marginAxis(FlexDirectionColumn)

		if usable, narrow := canUseCachedMeasurement(node.isTextNode,
			availableWidth, availableHeight, marginAxisRow, marginAxisColumn,
			widthMeasureMode, heightMeasureMode, layout.cachedLayout); usable {
			cachedResults = &layout.cachedLayout
			narrowHeight = narrow
		} else {
			for i := 0; i < layout.nextCachedMeasurementsIndex; i++ {
				if usable, narrow := canUseCachedMeasurement(node.isTextNode,
					availableWidth, availableHeight, marginAxisRow, marginAxisColumn,
					widthMeasureMode, heightMeasureMode, layout.cachedMeasurements[i]); usable {
					cachedResults = &layout.cachedMeasurements[i]
					narrowHeight = narrow
					break
				}
			}
		}
	} else if performLayout {
		if eq(layout.cachedLayout.availableWidth, availableWidth) &&
			eq(layout.cachedLayout.availableHeight, availableHeight) &&
			layout.cachedLayout.widthMeasureMode == widthMeasureMode &&
			layout.cachedLayout.heightMeasureMode == heightMeasureMode {
			cachedResults = &layout.cachedLayout
		}
	} else {
		for i := 0; i < layout.nextCachedMeasurementsIndex; i++ {
			c := &layout.cachedMeasurements[i]
			if eq(c.availableWidth, availableWidth) &&
				eq(c.availableHeight, availableHeight) &&
				c.widthMeasureMode == widthMeasureMode &&
				c.heightMeasureMode == heightMeasureMode {
				cachedResults = c
				break
			}
		}
	}

	if !needToVisitNode && cachedResults != nil {
		layout.measuredDimensions[DimensionWidth] = cachedResults.computedWidth
		layout.measuredDimensions[DimensionHeight] = cachedResults.computedHeight
		if narrowHeight {
			layout.measuredDimensions[DimensionHeight] =
				availableHeight - node.marginAxis(FlexDirectionColumn)
		}

		if e.PrintChanges && e.PrintSkips {
			logPrintf("%s%d.{[skipped] ", spacer(e.depth), e.depth)
			if node.print != nil {
				node.print(node.context)
			}
			logPrintf("wm: %s, hm: %s, aw: %f ah: %f => d: (%f, %f) %s\n",
				widthMeasureMode, heightMeasureMode,
				availableWidth, availableHeight,
				cachedResults.computedWidth, cachedResults.computedHeight, reason)
		}
	} else {
		if e.PrintChanges {
			marker := ""
			if needToVisitNode {
				marker = "*"
			}
			logPrintf("%s%d.{%s", spacer(e.depth), e.depth, marker)
			if node.print != nil {
				node.print(node.context)
			}
			logPrintf("wm: %s, hm: %s, aw: %f ah: %f %s\n",
				widthMeasureMode, heightMeasureMode,
				availableWidth, availableHeight, reason)
		}

		e.layoutNodeImpl(node, availableWidth, availableHeight, parentDirection,
			widthMeasureMode, heightMeasureMode, performLayout)

		if e.PrintChanges {
			marker := ""
			if needToVisitNode {
				marker = "*"
			}
			logPrintf("%s%d.}%s", spacer(e.depth), e.depth, marker)
			if node.print != nil {
				node.print(node.context)
			}
			logPrintf("wm: %s, hm: %s, d: (%f, %f) %s\n",
				widthMeasureMode, heightMeasureMode,
				layout.measuredDimensions[DimensionWidth],
				layout.measuredDimensions[DimensionHeight], reason)
		}

		layout.lastParentDirection = parentDirection

		if cachedResults == nil {
			if layout.nextCachedMeasurementsIndex == maxCachedResultCount {
				// Wrap the ring; eviction is FIFO by write position.
				layout.nextCachedMeasurementsIndex = 0
			}

			var newCacheEntry *cachedMeasurement
			if performLayout {
				newCacheEntry = &layout.cachedLayout
			} else {
				newCacheEntry = &layout.cachedMeasurements[layout.nextCachedMeasurementsIndex]
				layout.nextCachedMeasurementsIndex++
			}

			newCacheEntry.availableWidth = availableWidth
			newCacheEntry.availableHeight = availableHeight
			newCacheEntry.widthMeasureMode = widthMeasureMode
			newCacheEntry.heightMeasureMode = heightMeasureMode
			newCacheEntry.computedWidth = layout.measuredDimensions[DimensionWidth]
			newCacheEntry.computedHeight = layout.measuredDimensions[DimensionHeight]
		}
	}

	if performLayout {
		node.layout.dimensions[DimensionWidth] = node.layout.measuredDimensions[DimensionWidth]
		node.layout.dimensions[DimensionHeight] = node.layout.measuredDimensions[DimensionHeight]
		node.hasNewLayout = true
		node.isDirty = false
	}

	e.depth--
	layout.generationCount = e.currentGenerationCount
	return needToVisitNode || cachedResults == nil
}

// computeChildFlexBasis resolves a relative child's hypothetical main-axis
// size, measuring the child when neither flexBasis nor the matching style
// dimension pins it.
func (e *Engine) computeChildFlexBasis(node, child *Node,
	width float64, widthMode MeasureMode,
	height float64, heightMode MeasureMode,
	direction Direction) {

	mainAxis := resolveAxis(node.style.flexDirection, direction)
	isMainAxisRow := isRowDirection(mainAxis)

	if !IsUndefined(child.style.flexBasis) &&
		!IsUndefined(pick(isMainAxisRow, width, height)) {
		if IsUndefined(child.layout.computedFlexBasis) {
			child.layout.computedFlexBasis =
				fmax(child.style.flexBasis, child.paddingAndBorderAxis(mainAxis))
		}
	} else if isMainAxisRow && child.isStyleDimDefined(FlexDirectionRow) {
		// The width is definite, so use that as the flex basis.
		child.layout.computedFlexBasis = fmax(child.style.dimensions[DimensionWidth],
			child.paddingAndBorderAxis(FlexDirectionRow))
	} else if !isMainAxisRow && child.isStyleDimDefined(FlexDirectionColumn) {
		// The height is definite, so use that as the flex basis.
		child.layout.computedFlexBasis = fmax(child.style.dimensions[DimensionHeight],
			child.paddingAndBorderAxis(FlexDirectionColumn))
	} else {
		// Compute the flex basis and hypothetical main size (i.e. the
		// clamped flex basis).
		childWidth := Undefined
		childHeight := Undefined
		childWidthMeasureMode := MeasureModeUndefined
		childHeightMeasureMode := MeasureModeUndefined

		if child.isStyleDimDefined(FlexDirectionRow) {
			childWidth = child.style.dimensions[DimensionWidth] + child.marginAxis(FlexDirectionRow)
			childWidthMeasureMode = MeasureModeExactly
		}
		if child.isStyleDimDefined(FlexDirectionColumn) {
			childHeight = child.style.dimensions[DimensionHeight] + child.marginAxis(FlexDirectionColumn)
			childHeightMeasureMode = MeasureModeExactly
		}

		// The W3C spec doesn't say anything about the 'overflow' property,
		// but all major browsers appear to implement the following logic.
		if (!isMainAxisRow && node.style.overflow == OverflowScroll) ||
			node.style.overflow != OverflowScroll {
			if IsUndefined(childWidth) && !IsUndefined(width) {
				childWidth = width
				childWidthMeasureMode = MeasureModeAtMost
			}
		}

		if (isMainAxisRow && node.style.overflow == OverflowScroll) ||
			node.style.overflow != OverflowScroll {
			if IsUndefined(childHeight) && !IsUndefined(height) {
				childHeight = height
				childHeightMeasureMode = MeasureModeAtMost
			}
		}

		// If the child has no defined size in the cross axis and is set to
		// stretch, measure the cross axis exactly with the available inner
		// dimension.
		if !isMainAxisRow && !IsUndefined(width) &&
			!child.isStyleDimDefined(FlexDirectionRow) && widthMode == MeasureModeExactly &&
			alignItem(node, child) == AlignStretch {
			childWidth = width
			childWidthMeasureMode = MeasureModeExactly
		}
		if isMainAxisRow && !IsUndefined(height) &&
			!child.isStyleDimDefined(FlexDirectionColumn) && heightMode == MeasureModeExactly &&
			alignItem(node, child) == AlignStretch {
			childHeight = height
			childHeightMeasureMode = MeasureModeExactly
		}

		e.layoutNodeInternal(child, childWidth, childHeight, direction,
			childWidthMeasureMode, childHeightMeasureMode, false, "measure")

		child.layout.computedFlexBasis = fmax(
			pick(isMainAxisRow,
				child.layout.measuredDimensions[DimensionWidth],
				child.layout.measuredDimensions[DimensionHeight]),
			child.paddingAndBorderAxis(mainAxis))
	}
}

// absoluteLayoutChild sizes and positions one absolutely positioned child
// against its parent's measured dimensions.
func (e *Engine) absoluteLayoutChild(node, child *Node,
	width float64, widthMode MeasureMode, direction Direction) {

	mainAxis := resolveAxis(node.style.flexDirection, direction)
	crossAxis := crossFlexDirection(mainAxis, direction)
	isMainAxisRow := isRowDirection(mainAxis)

	childWidth := Undefined
	childHeight := Undefined
	childWidthMeasureMode := MeasureModeUndefined
	childHeightMeasureMode := MeasureModeUndefined

	if child.isStyleDimDefined(FlexDirectionRow) {
		childWidth = child.style.dimensions[DimensionWidth] + child.marginAxis(FlexDirectionRow)
	} else {
		// If the child doesn't have a specified width, compute it from the
		// left/right offsets when both are defined.
		if child.isLeadingPosDefined(FlexDirectionRow) &&
			child.isTrailingPosDefined(FlexDirectionRow) {
			childWidth = node.layout.measuredDimensions[DimensionWidth] -
				(node.leadingBorder(FlexDirectionRow) + node.trailingBorder(FlexDirectionRow)) -
				(child.leadingPosition(FlexDirectionRow) + child.trailingPosition(FlexDirectionRow))
			childWidth = child.boundAxis(FlexDirectionRow, childWidth)
		}
	}

	if child.isStyleDimDefined(FlexDirectionColumn) {
		childHeight = child.style.dimensions[DimensionHeight] + child.marginAxis(FlexDirectionColumn)
	} else {
		// Symmetrically for the height from the top/bottom offsets.
		if child.isLeadingPosDefined(FlexDirectionColumn) &&
			child.isTrailingPosDefined(FlexDirectionColumn) {
			childHeight = node.layout.measuredDimensions[DimensionHeight] -
				(node.leadingBorder(FlexDirectionColumn) + node.trailingBorder(FlexDirectionColumn)) -
				(child.leadingPosition(FlexDirectionColumn) + child.trailingPosition(FlexDirectionColumn))
			childHeight = child.boundAxis(FlexDirectionColumn, childHeight)
		}
	}

	// If we're still missing one or the other dimension, measure the
	// content.
	if IsUndefined(childWidth) || IsUndefined(childHeight) {
		if !IsUndefined(childWidth) {
			childWidthMeasureMode = MeasureModeExactly
		}
		if !IsUndefined(childHeight) {
			childHeightMeasureMode = MeasureModeExactly
		}

		// If the main size is not definite and the child's inline axis is
		// parallel to the main axis, size with undefined in the main size;
		// otherwise use at-most in the cross axis.
		if !isMainAxisRow && IsUndefined(childWidth) && widthMode != MeasureModeUndefined {
			childWidth = width
			childWidthMeasureMode = MeasureModeAtMost
		}

		e.layoutNodeInternal(child, childWidth, childHeight, direction,
			childWidthMeasureMode, childHeightMeasureMode, false, "abs-measure")
		childWidth = child.layout.measuredDimensions[DimensionWidth] +
			child.marginAxis(FlexDirectionRow)
		childHeight = child.layout.measuredDimensions[DimensionHeight] +
			child.marginAxis(FlexDirectionColumn)
	}

	e.layoutNodeInternal(child, childWidth, childHeight, direction,
		MeasureModeExactly, MeasureModeExactly, true, "abs-layout")

	if child.isTrailingPosDefined(mainAxis) && !child.isLeadingPosDefined(mainAxis) {
		child.layout.position[leading[mainAxis]] = node.layout.measuredDimensions[dim[mainAxis]] -
			child.layout.measuredDimensions[dim[mainAxis]] -
			child.trailingPosition(mainAxis)
	}

	if child.isTrailingPosDefined(crossAxis) && !child.isLeadingPosDefined(crossAxis) {
		child.layout.position[leading[crossAxis]] = node.layout.measuredDimensions[dim[crossAxis]] -
			child.layout.measuredDimensions[dim[crossAxis]] -
			child.trailingPosition(crossAxis)
	}
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// layoutNodeImpl is the recursive flexbox routine. Style fields are
// treated as read-only input; it sets layout.direction and
// layout.measuredDimensions on the node and layout.position plus
// lineIndex on its children. Measured dimensions include border and
// padding but never margins.
//
// Measure modes map onto the CSS sizing terms: Undefined is max-content,
// Exactly is fill-available, AtMost is fit-content. An undefined
// availability must always be paired with an Undefined mode.
func (e *Engine) layoutNodeImpl(node *Node,
	availableWidth, availableHeight float64,
	parentDirection Direction,
	widthMeasureMode, heightMeasureMode MeasureMode,
	performLayout bool) {

	assertCond(IsUndefined(availableWidth) == (widthMeasureMode == MeasureModeUndefined),
		"availableWidth must be indefinite exactly when widthMeasureMode is MeasureModeUndefined")
	assertCond(IsUndefined(availableHeight) == (heightMeasureMode == MeasureModeUndefined),
		"availableHeight must be indefinite exactly when heightMeasureMode is MeasureModeUndefined")

	paddingAndBorderAxisRow := node.paddingAndBorderAxis(FlexDirectionRow)
	paddingAndBorderAxisColumn := node.paddingAndBorderAxis(FlexDirectionColumn)
	marginAxisRow := node.marginAxis(FlexDirectionRow)
	marginAxisColumn := node.marginAxis(FlexDirectionColumn)

	// Set the resolved direction in the node's layout.
	direction := resolveDirection(node, parentDirection)
	node.layout.direction = direction

	// For content (text) nodes, the dimensions come from the measure
	// callback.
	if node.measure != nil && node.ChildCount() == 0 {
		innerWidth := availableWidth - marginAxisRow - paddingAndBorderAxisRow
		innerHeight := availableHeight - marginAxisColumn - paddingAndBorderAxisColumn

		if widthMeasureMode == MeasureModeExactly && heightMeasureMode == MeasureModeExactly {
			// Don't bother sizing the text if both dimensions are already
			// defined.
			node.layout.measuredDimensions[DimensionWidth] =
				node.boundAxis(FlexDirectionRow, availableWidth-marginAxisRow)
			node.layout.measuredDimensions[DimensionHeight] =
				node.boundAxis(FlexDirectionColumn, availableHeight-marginAxisColumn)
		} else if innerWidth <= 0 || innerHeight <= 0 {
			// No horizontal or vertical space to measure in.
			node.layout.measuredDimensions[DimensionWidth] = node.boundAxis(FlexDirectionRow, 0)
			node.layout.measuredDimensions[DimensionHeight] = node.boundAxis(FlexDirectionColumn, 0)
		} else {
			measuredSize := node.measure(node.context,
				innerWidth, widthMeasureMode, innerHeight, heightMeasureMode)

			if widthMeasureMode == MeasureModeUndefined || widthMeasureMode == MeasureModeAtMost {
				node.layout.measuredDimensions[DimensionWidth] =
					node.boundAxis(FlexDirectionRow, measuredSize.Width+paddingAndBorderAxisRow)
			} else {
				node.layout.measuredDimensions[DimensionWidth] =
					node.boundAxis(FlexDirectionRow, availableWidth-marginAxisRow)
			}
			if heightMeasureMode == MeasureModeUndefined || heightMeasureMode == MeasureModeAtMost {
				node.layout.measuredDimensions[DimensionHeight] =
					node.boundAxis(FlexDirectionColumn, measuredSize.Height+paddingAndBorderAxisColumn)
			} else {
				node.layout.measuredDimensions[DimensionHeight] =
					node.boundAxis(FlexDirectionColumn, availableHeight-marginAxisColumn)
			}
		}

		return
	}

	// For nodes with no children, use the available values when provided,
	// or the minimum size as indicated by padding and border.
	childCount := node.ChildCount()
	if childCount == 0 {
		if widthMeasureMode == MeasureModeUndefined || widthMeasureMode == MeasureModeAtMost {
			node.layout.measuredDimensions[DimensionWidth] =
				node.boundAxis(FlexDirectionRow, paddingAndBorderAxisRow)
		} else {
			node.layout.measuredDimensions[DimensionWidth] =
				node.boundAxis(FlexDirectionRow, availableWidth-marginAxisRow)
		}
		if heightMeasureMode == MeasureModeUndefined || heightMeasureMode == MeasureModeAtMost {
			node.layout.measuredDimensions[DimensionHeight] =
				node.boundAxis(FlexDirectionColumn, paddingAndBorderAxisColumn)
		} else {
			node.layout.measuredDimensions[DimensionHeight] =
				node.boundAxis(FlexDirectionColumn, availableHeight-marginAxisColumn)
		}
		return
	}

	// When not performing a full layout, a number of common cases resolve
	// without recursing.
	if !performLayout {
		if widthMeasureMode == MeasureModeAtMost && availableWidth <= 0 &&
			heightMeasureMode == MeasureModeAtMost && availableHeight <= 0 {
			node.layout.measuredDimensions[DimensionWidth] = node.boundAxis(FlexDirectionRow, 0)
			node.layout.measuredDimensions[DimensionHeight] = node.boundAxis(FlexDirectionColumn, 0)
			return
		}

		if widthMeasureMode == MeasureModeAtMost && availableWidth <= 0 {
			node.layout.measuredDimensions[DimensionWidth] = node.boundAxis(FlexDirectionRow, 0)
			h := 0.0
			if !IsUndefined(availableHeight) {
				h = availableHeight - marginAxisColumn
			}
			node.layout.measuredDimensions[DimensionHeight] = node.boundAxis(FlexDirectionColumn, h)
			return
		}

		if heightMeasureMode == MeasureModeAtMost && availableHeight <= 0 {
			w := 0.0
			if !IsUndefined(availableWidth) {
				w = availableWidth - marginAxisRow
			}
			node.layout.measuredDimensions[DimensionWidth] = node.boundAxis(FlexDirectionRow, w)
			node.layout.measuredDimensions[DimensionHeight] = node.boundAxis(FlexDirectionColumn, 0)
			return
		}

		// With an exact width and height there's no need to measure the
		// children.
		if widthMeasureMode == MeasureModeExactly && heightMeasureMode == MeasureModeExactly {
			node.layout.measuredDimensions[DimensionWidth] =
				node.boundAxis(FlexDirectionRow, availableWidth-marginAxisRow)
			node.layout.measuredDimensions[DimensionHeight] =
				node.boundAxis(FlexDirectionColumn, availableHeight-marginAxisColumn)
			return
		}
	}

	// STEP 1: CALCULATE VALUES FOR REMAINDER OF ALGORITHM
	mainAxis := resolveAxis(node.style.flexDirection, direction)
	crossAxis := crossFlexDirection(mainAxis, direction)
	isMainAxisRow := isRowDirection(mainAxis)
	justifyContent := node.style.justifyContent
	isNodeFlexWrap := node.style.flexWrap == WrapWrap

	var firstAbsoluteChild *Node
	var currentAbsoluteChild *Node

	leadingPaddingAndBorderMain := node.leadingPaddingAndBorder(mainAxis)
	trailingPaddingAndBorderMain := node.trailingPaddingAndBorder(mainAxis)
	leadingPaddingAndBorderCross := node.leadingPaddingAndBorder(crossAxis)
	paddingAndBorderAxisMain := node.paddingAndBorderAxis(mainAxis)
	paddingAndBorderAxisCross := node.paddingAndBorderAxis(crossAxis)

	measureModeMainDim := pickMode(isMainAxisRow, widthMeasureMode, heightMeasureMode)
	measureModeCrossDim := pickMode(isMainAxisRow, heightMeasureMode, widthMeasureMode)

	// STEP 2: DETERMINE AVAILABLE SIZE IN MAIN AND CROSS DIRECTIONS
	availableInnerWidth := availableWidth - marginAxisRow - paddingAndBorderAxisRow
	availableInnerHeight := availableHeight - marginAxisColumn - paddingAndBorderAxisColumn
	availableInnerMainDim := pick(isMainAxisRow, availableInnerWidth, availableInnerHeight)
	availableInnerCrossDim := pick(isMainAxisRow, availableInnerHeight, availableInnerWidth)

	// STEP 3: DETERMINE FLEX BASIS FOR EACH ITEM
	for i := 0; i < childCount; i++ {
		child := node.Child(i)

		if performLayout {
			// Seed the initial position relative to the parent.
			childDirection := resolveDirection(child, direction)
			child.setPosition(childDirection)
		}

		// Absolutely positioned children don't participate in flex layout;
		// collect them on a private list for later.
		if child.style.positionType == PositionAbsolute {
			if firstAbsoluteChild == nil {
				firstAbsoluteChild = child
			}
			if currentAbsoluteChild != nil {
				currentAbsoluteChild.nextChild = child
			}
			currentAbsoluteChild = child
			child.nextChild = nil
		} else {
			e.computeChildFlexBasis(node, child,
				availableInnerWidth, widthMeasureMode,
				availableInnerHeight, heightMeasureMode,
				direction)
		}
	}

	// STEP 4: COLLECT FLEX ITEMS INTO FLEX LINES
	startOfLineIndex := 0
	endOfLineIndex := 0
	lineCount := 0

	// Accumulated cross dimension of all lines, and max main dimension
	// across them.
	totalLineCrossDim := 0.0
	maxLineMainDim := 0.0

	for ; endOfLineIndex < childCount; lineCount, startOfLineIndex = lineCount+1, endOfLineIndex {
		// Items on the current line; may differ from the index span because
		// absolutely positioned items are skipped.
		itemsOnLine := 0

		// Accumulated size and margin of children on the line; used to size
		// the node when no dimension exists, or to compute the remaining
		// space for the flexible children.
		sizeConsumedOnCurrentLine := 0.0

		totalFlexGrowFactors := 0.0
		totalFlexShrinkScaledFactors := 0.0

		// Linked list of children that can shrink and/or grow.
		var firstRelativeChild *Node
		var currentRelativeChild *Node

		// Add items to the current line until it's full or we run out.
		for i := startOfLineIndex; i < childCount; i, endOfLineIndex = i+1, endOfLineIndex+1 {
			child := node.Child(i)
			child.lineIndex = lineCount

			if child.style.positionType != PositionAbsolute {
				outerFlexBasis := child.layout.computedFlexBasis + child.marginAxis(mainAxis)

				// In a wrapping flow an item that pushes past the available
				// size ends the current line.
				if sizeConsumedOnCurrentLine+outerFlexBasis > availableInnerMainDim &&
					isNodeFlexWrap && itemsOnLine > 0 {
					break
				}

				sizeConsumedOnCurrentLine += outerFlexBasis
				itemsOnLine++

				if isFlex(child) {
					totalFlexGrowFactors += child.style.flexGrow

					// Unlike the grow factor, the shrink factor is scaled
					// relative to the child dimension.
					totalFlexShrinkScaledFactors += -child.style.flexShrink * child.layout.computedFlexBasis
				}

				if firstRelativeChild == nil {
					firstRelativeChild = child
				}
				if currentRelativeChild != nil {
					currentRelativeChild.nextChild = child
				}
				currentRelativeChild = child
				child.nextChild = nil
			}
		}

		// If we don't need to measure the cross axis, we can skip the entire
		// flex step.
		canSkipFlex := !performLayout && measureModeCrossDim == MeasureModeExactly

		// Main-axis positioning has two controls: the space before the first
		// element and the space between each pair.
		leadingMainDim := 0.0
		betweenMainDim := 0.0

		// STEP 5: RESOLVING FLEXIBLE LENGTHS ON MAIN AXIS
		// If the main dimension size isn't known, it is computed from the
		// line length, so there is no space left to distribute.
		remainingFreeSpace := 0.0
		if !IsUndefined(availableInnerMainDim) {
			remainingFreeSpace = availableInnerMainDim - sizeConsumedOnCurrentLine
		} else if sizeConsumedOnCurrentLine < 0 {
			// The node is sized from its content and will allocate zero
			// pixels for it.
			remainingFreeSpace = -sizeConsumedOnCurrentLine
		}

		originalRemainingFreeSpace := remainingFreeSpace
		deltaFreeSpace := 0.0

		if !canSkipFlex {
			// Two passes over the flex items. The first pass finds the items
			// whose min/max constraints trigger, freezes them at those sizes,
			// and excludes their sizes and factors from the remaining space.
			// The second pass sizes each flexible item from whatever space is
			// left; frozen items re-hit their bound. This fixed two-pass
			// scheme replaces the variable-iteration loop in the CSS spec.
			deltaFlexShrinkScaledFactors := 0.0
			deltaFlexGrowFactors := 0.0

			for currentRelativeChild = firstRelativeChild; currentRelativeChild != nil; currentRelativeChild = currentRelativeChild.nextChild {
				childFlexBasis := currentRelativeChild.layout.computedFlexBasis

				if remainingFreeSpace < 0 {
					flexShrinkScaledFactor := -currentRelativeChild.style.flexShrink * childFlexBasis

					if flexShrinkScaledFactor != 0 {
						baseMainSize := childFlexBasis +
							remainingFreeSpace/totalFlexShrinkScaledFactors*flexShrinkScaledFactor
						boundMainSize := currentRelativeChild.boundAxis(mainAxis, baseMainSize)
						if baseMainSize != boundMainSize {
							deltaFreeSpace -= boundMainSize - childFlexBasis
							deltaFlexShrinkScaledFactors -= flexShrinkScaledFactor
						}
					}
				} else if remainingFreeSpace > 0 {
					flexGrowFactor := currentRelativeChild.style.flexGrow

					if flexGrowFactor != 0 {
						baseMainSize := childFlexBasis +
							remainingFreeSpace/totalFlexGrowFactors*flexGrowFactor
						boundMainSize := currentRelativeChild.boundAxis(mainAxis, baseMainSize)
						if baseMainSize != boundMainSize {
							deltaFreeSpace -= boundMainSize - childFlexBasis
							deltaFlexGrowFactors -= flexGrowFactor
						}
					}
				}
			}

			totalFlexShrinkScaledFactors += deltaFlexShrinkScaledFactors
			totalFlexGrowFactors += deltaFlexGrowFactors
			remainingFreeSpace += deltaFreeSpace

			// Second pass: resolve the sizes of the flexible items.
			deltaFreeSpace = 0
			for currentRelativeChild = firstRelativeChild; currentRelativeChild != nil; currentRelativeChild = currentRelativeChild.nextChild {
				childFlexBasis := currentRelativeChild.layout.computedFlexBasis
				updatedMainSize := childFlexBasis

				if remainingFreeSpace < 0 {
					flexShrinkScaledFactor := -currentRelativeChild.style.flexShrink * childFlexBasis
					if flexShrinkScaledFactor != 0 {
						var childSize float64
						if totalFlexShrinkScaledFactors == 0 {
							childSize = childFlexBasis + flexShrinkScaledFactor
						} else {
							childSize = childFlexBasis +
								remainingFreeSpace/totalFlexShrinkScaledFactors*flexShrinkScaledFactor
						}
						updatedMainSize = currentRelativeChild.boundAxis(mainAxis, childSize)
					}
				} else if remainingFreeSpace > 0 {
					flexGrowFactor := currentRelativeChild.style.flexGrow
					if flexGrowFactor != 0 {
						updatedMainSize = currentRelativeChild.boundAxis(mainAxis,
							childFlexBasis+remainingFreeSpace/totalFlexGrowFactors*flexGrowFactor)
					}
				}

				deltaFreeSpace -= updatedMainSize - childFlexBasis

				var childWidth, childHeight float64
				var childWidthMeasureMode, childHeightMeasureMode MeasureMode

				if isMainAxisRow {
					childWidth = updatedMainSize + currentRelativeChild.marginAxis(FlexDirectionRow)
					childWidthMeasureMode = MeasureModeExactly

					if !IsUndefined(availableInnerCrossDim) &&
						!currentRelativeChild.isStyleDimDefined(FlexDirectionColumn) &&
						heightMeasureMode == MeasureModeExactly &&
						alignItem(node, currentRelativeChild) == AlignStretch {
						childHeight = availableInnerCrossDim
						childHeightMeasureMode = MeasureModeExactly
					} else if !currentRelativeChild.isStyleDimDefined(FlexDirectionColumn) {
						childHeight = availableInnerCrossDim
						if IsUndefined(childHeight) {
							childHeightMeasureMode = MeasureModeUndefined
						} else {
							childHeightMeasureMode = MeasureModeAtMost
						}
					} else {
						childHeight = currentRelativeChild.style.dimensions[DimensionHeight] +
							currentRelativeChild.marginAxis(FlexDirectionColumn)
						childHeightMeasureMode = MeasureModeExactly
					}
				} else {
					childHeight = updatedMainSize + currentRelativeChild.marginAxis(FlexDirectionColumn)
					childHeightMeasureMode = MeasureModeExactly

					if !IsUndefined(availableInnerCrossDim) &&
						!currentRelativeChild.isStyleDimDefined(FlexDirectionRow) &&
						widthMeasureMode == MeasureModeExactly &&
						alignItem(node, currentRelativeChild) == AlignStretch {
						childWidth = availableInnerCrossDim
						childWidthMeasureMode = MeasureModeExactly
					} else if !currentRelativeChild.isStyleDimDefined(FlexDirectionRow) {
						childWidth = availableInnerCrossDim
						if IsUndefined(childWidth) {
							childWidthMeasureMode = MeasureModeUndefined
						} else {
							childWidthMeasureMode = MeasureModeAtMost
						}
					} else {
						childWidth = currentRelativeChild.style.dimensions[DimensionWidth] +
							currentRelativeChild.marginAxis(FlexDirectionRow)
						childWidthMeasureMode = MeasureModeExactly
					}
				}

				requiresStretchLayout := !currentRelativeChild.isStyleDimDefined(crossAxis) &&
					alignItem(node, currentRelativeChild) == AlignStretch

				// Recursively lay out the child with the updated main size.
				e.layoutNodeInternal(currentRelativeChild, childWidth, childHeight, direction,
					childWidthMeasureMode, childHeightMeasureMode,
					performLayout && !requiresStretchLayout, "flex")
			}
		}

		remainingFreeSpace = originalRemainingFreeSpace + deltaFreeSpace

		// STEP 6: MAIN-AXIS JUSTIFICATION & CROSS-AXIS SIZE DETERMINATION

		// Under at-most rules in the main axis, the remaining space is only
		// kept up to the main-axis minimum size.
		if measureModeMainDim == MeasureModeAtMost && remainingFreeSpace > 0 {
			if !IsUndefined(node.style.minDimensions[dim[mainAxis]]) &&
				node.style.minDimensions[dim[mainAxis]] >= 0 {
				remainingFreeSpace = fmax(0,
					node.style.minDimensions[dim[mainAxis]]-
						(availableInnerMainDim-remainingFreeSpace))
			} else {
				remainingFreeSpace = 0
			}
		}

		switch justifyContent {
		case JustifyCenter:
			leadingMainDim = remainingFreeSpace / 2
		case JustifyFlexEnd:
			leadingMainDim = remainingFreeSpace
		case JustifySpaceBetween:
			if itemsOnLine > 1 {
				betweenMainDim = fmax(remainingFreeSpace, 0) / float64(itemsOnLine-1)
			} else {
				betweenMainDim = 0
			}
		case JustifySpaceAround:
			// Space on the edges is half of the space between elements.
			betweenMainDim = remainingFreeSpace / float64(itemsOnLine)
			leadingMainDim = betweenMainDim / 2
		case JustifyFlexStart:
		}

		mainDim := leadingPaddingAndBorderMain + leadingMainDim
		crossDim := 0.0

		for i := startOfLineIndex; i < endOfLineIndex; i++ {
			child := node.Child(i)

			if child.style.positionType == PositionAbsolute &&
				child.isLeadingPosDefined(mainAxis) {
				if performLayout {
					// An absolute child with a defined leading main position
					// gets exactly that position (plus parent border and its
					// own margin).
					child.layout.position[pos[mainAxis]] = child.leadingPosition(mainAxis) +
						node.leadingBorder(mainAxis) +
						child.leadingMargin(mainAxis)
				}
			} else {
				if performLayout {
					// Relative children, and absolute children without a
					// leading position, land at the current accumulated
					// offset.
					child.layout.position[pos[mainAxis]] += mainDim
				}

				// Only relative children advance the line accounting.
				if child.style.positionType == PositionRelative {
					if canSkipFlex {
						// The flex step was skipped, so measured dimensions
						// are unset; advance by basis and margin instead.
						mainDim += betweenMainDim + child.marginAxis(mainAxis) +
							child.layout.computedFlexBasis
						crossDim = availableInnerCrossDim
					} else {
						mainDim += betweenMainDim + child.dimWithMargin(mainAxis)

						// The cross dimension is the max of the children's
						// outer cross sizes.
						crossDim = fmax(crossDim, child.dimWithMargin(crossAxis))
					}
				}
			}
		}

		mainDim += trailingPaddingAndBorderMain

		containerCrossAxis := availableInnerCrossDim
		if measureModeCrossDim == MeasureModeUndefined || measureModeCrossDim == MeasureModeAtMost {
			// Compute the cross axis from the max cross dimension of the
			// children.
			containerCrossAxis = node.boundAxis(crossAxis, crossDim+paddingAndBorderAxisCross) -
				paddingAndBorderAxisCross

			if measureModeCrossDim == MeasureModeAtMost {
				containerCrossAxis = fmin(containerCrossAxis, availableInnerCrossDim)
			}
		}

		// Without flex wrap the cross dimension is defined by the container.
		if !isNodeFlexWrap && measureModeCrossDim == MeasureModeExactly {
			crossDim = availableInnerCrossDim
		}

		// Clamp to the min/max size specified on the container.
		crossDim = node.boundAxis(crossAxis, crossDim+paddingAndBorderAxisCross) -
			paddingAndBorderAxisCross

		// STEP 7: CROSS-AXIS ALIGNMENT
		// Child alignment is skipped when only measuring the container.
		if performLayout {
			for i := startOfLineIndex; i < endOfLineIndex; i++ {
				child := node.Child(i)

				if child.style.positionType == PositionAbsolute {
					// An absolute child with a defined leading cross position
					// overrides any previously computed position.
					if child.isLeadingPosDefined(crossAxis) {
						child.layout.position[pos[crossAxis]] = child.leadingPosition(crossAxis) +
							node.leadingBorder(crossAxis) +
							child.leadingMargin(crossAxis)
					} else {
						child.layout.position[pos[crossAxis]] =
							leadingPaddingAndBorderCross + child.leadingMargin(crossAxis)
					}
				} else {
					leadingCrossDim := leadingPaddingAndBorderCross

					// Relative children are positioned from alignItems or
					// their own alignSelf.
					align := alignItem(node, child)

					if align == AlignStretch {
						// A stretch child is laid out once more with the
						// cross-axis size forced to the line's cross size,
						// unless its cross dimension is already definite.
						isCrossSizeDefinite := (isMainAxisRow && child.isStyleDimDefined(FlexDirectionColumn)) ||
							(!isMainAxisRow && child.isStyleDimDefined(FlexDirectionRow))

						var childWidth, childHeight float64
						if isMainAxisRow {
							childHeight = crossDim
							childWidth = child.layout.measuredDimensions[DimensionWidth] +
								child.marginAxis(FlexDirectionRow)
						} else {
							childWidth = crossDim
							childHeight = child.layout.measuredDimensions[DimensionHeight] +
								child.marginAxis(FlexDirectionColumn)
						}

						if !isCrossSizeDefinite {
							childWidthMeasureMode := MeasureModeExactly
							if IsUndefined(childWidth) {
								childWidthMeasureMode = MeasureModeUndefined
							}
							childHeightMeasureMode := MeasureModeExactly
							if IsUndefined(childHeight) {
								childHeightMeasureMode = MeasureModeUndefined
							}
							e.layoutNodeInternal(child, childWidth, childHeight, direction,
								childWidthMeasureMode, childHeightMeasureMode, true, "stretch")
						}
					} else if align != AlignFlexStart {
						remainingCrossDim := containerCrossAxis - child.dimWithMargin(crossAxis)

						if align == AlignCenter {
							leadingCrossDim += remainingCrossDim / 2
						} else { // AlignFlexEnd
							leadingCrossDim += remainingCrossDim
						}
					}

					child.layout.position[pos[crossAxis]] += totalLineCrossDim + leadingCrossDim
				}
			}
		}

		totalLineCrossDim += crossDim
		maxLineMainDim = fmax(maxLineMainDim, mainDim)
	}

	// STEP 8: MULTI-LINE CONTENT ALIGNMENT
	if lineCount > 1 && performLayout && !IsUndefined(availableInnerCrossDim) {
		remainingAlignContentDim := availableInnerCrossDim - totalLineCrossDim

		crossDimLead := 0.0
		currentLead := leadingPaddingAndBorderCross

		switch node.style.alignContent {
		case AlignFlexEnd:
			currentLead += remainingAlignContentDim
		case AlignCenter:
			currentLead += remainingAlignContentDim / 2
		case AlignStretch:
			if availableInnerCrossDim > totalLineCrossDim {
				crossDimLead = remainingAlignContentDim / float64(lineCount)
			}
		case AlignAuto, AlignFlexStart:
		}

		endIndex := 0
		for i := 0; i < lineCount; i++ {
			startIndex := endIndex
			var ii int

			// Compute the line's height and find its end index.
			lineHeight := 0.0
			for ii = startIndex; ii < childCount; ii++ {
				child := node.Child(ii)

				if child.style.positionType == PositionRelative {
					if child.lineIndex != i {
						break
					}

					if child.isLayoutDimDefined(crossAxis) {
						lineHeight = fmax(lineHeight,
							child.layout.measuredDimensions[dim[crossAxis]]+
								child.marginAxis(crossAxis))
					}
				}
			}
			endIndex = ii
			lineHeight += crossDimLead

			for ii = startIndex; ii < endIndex; ii++ {
				child := node.Child(ii)

				if child.style.positionType == PositionRelative {
					switch alignItem(node, child) {
					case AlignFlexStart:
						child.layout.position[pos[crossAxis]] =
							currentLead + child.leadingMargin(crossAxis)
					case AlignFlexEnd:
						child.layout.position[pos[crossAxis]] =
							currentLead + lineHeight - child.trailingMargin(crossAxis) -
								child.layout.measuredDimensions[dim[crossAxis]]
					case AlignCenter:
						childHeight := child.layout.measuredDimensions[dim[crossAxis]]
						child.layout.position[pos[crossAxis]] =
							currentLead + (lineHeight-childHeight)/2
					case AlignStretch:
						child.layout.position[pos[crossAxis]] =
							currentLead + child.leadingMargin(crossAxis)
					case AlignAuto:
					}
				}
			}

			currentLead += lineHeight
		}
	}

	// STEP 9: COMPUTING FINAL DIMENSIONS
	node.layout.measuredDimensions[DimensionWidth] =
		node.boundAxis(FlexDirectionRow, availableWidth-marginAxisRow)
	node.layout.measuredDimensions[DimensionHeight] =
		node.boundAxis(FlexDirectionColumn, availableHeight-marginAxisColumn)

	// Without an imposed main dimension, size the node from its content.
	if measureModeMainDim == MeasureModeUndefined {
		node.layout.measuredDimensions[dim[mainAxis]] = node.boundAxis(mainAxis, maxLineMainDim)
	} else if measureModeMainDim == MeasureModeAtMost {
		node.layout.measuredDimensions[dim[mainAxis]] = fmax(
			fmin(availableInnerMainDim+paddingAndBorderAxisMain,
				node.boundAxisWithinMinAndMax(mainAxis, maxLineMainDim)),
			paddingAndBorderAxisMain)
	}

	if measureModeCrossDim == MeasureModeUndefined {
		node.layout.measuredDimensions[dim[crossAxis]] =
			node.boundAxis(crossAxis, totalLineCrossDim+paddingAndBorderAxisCross)
	} else if measureModeCrossDim == MeasureModeAtMost {
		node.layout.measuredDimensions[dim[crossAxis]] = fmax(
			fmin(availableInnerCrossDim+paddingAndBorderAxisCross,
				node.boundAxisWithinMinAndMax(crossAxis, totalLineCrossDim+paddingAndBorderAxisCross)),
			paddingAndBorderAxisCross)
	}

	if performLayout {
		// STEP 10: SIZING AND POSITIONING ABSOLUTE CHILDREN
		for currentAbsoluteChild = firstAbsoluteChild; currentAbsoluteChild != nil; currentAbsoluteChild = currentAbsoluteChild.nextChild {
			e.absoluteLayoutChild(node, currentAbsoluteChild,
				availableInnerWidth, widthMeasureMode, direction)
		}

		// STEP 11: SETTING TRAILING POSITIONS FOR CHILDREN
		needsMainTrailingPos := isReverseDirection(mainAxis)
		needsCrossTrailingPos := isReverseDirection(crossAxis)

		if needsMainTrailingPos || needsCrossTrailingPos {
			for i := 0; i < childCount; i++ {
				child := node.Child(i)

				if needsMainTrailingPos {
					setTrailingPosition(node, child, mainAxis)
				}
				if needsCrossTrailingPos {
					setTrailingPosition(node, child, crossAxis)
				}
			}
		}
	}
}

func pickMode(cond bool, a, b MeasureMode) MeasureMode {
	if cond {
		return a
	}
	return b
}
