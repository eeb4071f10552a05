// Package flex layout algorithm tests. Positions are always relative to
// the parent node.
package flex

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func checkRect(t *testing.T, name string, n *Node, left, top, width, height float64) {
	t.Helper()
	if !approx(n.LayoutLeft(), left) {
		t.Errorf("%s left = %v, want %v", name, n.LayoutLeft(), left)
	}
	if !approx(n.LayoutTop(), top) {
		t.Errorf("%s top = %v, want %v", name, n.LayoutTop(), top)
	}
	if !approx(n.LayoutWidth(), width) {
		t.Errorf("%s width = %v, want %v", name, n.LayoutWidth(), width)
	}
	if !approx(n.LayoutHeight(), height) {
		t.Errorf("%s height = %v, want %v", name, n.LayoutHeight(), height)
	}
}

func newRoot(width, height float64, flexDirection FlexDirection) *Node {
	root := NewNode()
	root.SetWidth(width)
	root.SetHeight(height)
	root.SetFlexDirection(flexDirection)
	return root
}

func TestRowEqualGrow(t *testing.T) {
	root := newRoot(300, 100, FlexDirectionRow)

	children := make([]*Node, 3)
	for i := range children {
		c := NewNode()
		c.SetFlexGrow(1)
		c.SetFlexBasis(0)
		root.InsertChild(c, i)
		children[i] = c
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	checkRect(t, "root", root, 0, 0, 300, 100)
	checkRect(t, "child0", children[0], 0, 0, 100, 100)
	checkRect(t, "child1", children[1], 100, 0, 100, 100)
	checkRect(t, "child2", children[2], 200, 0, 100, 100)
}

func TestColumnSpaceBetween(t *testing.T) {
	root := newRoot(100, 100, FlexDirectionColumn)
	root.SetJustifyContent(JustifySpaceBetween)

	a := NewNode()
	a.SetHeight(20)
	b := NewNode()
	b.SetHeight(20)
	root.InsertChild(a, 0)
	root.InsertChild(b, 1)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(a.LayoutTop(), 0) {
		t.Errorf("First child top = %v, want 0", a.LayoutTop())
	}
	if !approx(b.LayoutTop(), 80) {
		t.Errorf("Second child top = %v, want 80", b.LayoutTop())
	}
}

func TestJustifyContentRow(t *testing.T) {
	tests := []struct {
		justify Justify
		want    [2]float64
	}{
		{JustifyFlexStart, [2]float64{0, 50}},
		{JustifyCenter, [2]float64{100, 150}},
		{JustifyFlexEnd, [2]float64{200, 250}},
		{JustifySpaceBetween, [2]float64{0, 250}},
		{JustifySpaceAround, [2]float64{50, 200}},
	}

	for _, tt := range tests {
		root := newRoot(300, 50, FlexDirectionRow)
		root.SetJustifyContent(tt.justify)
		a := NewNode()
		a.SetWidth(50)
		b := NewNode()
		b.SetWidth(50)
		root.InsertChild(a, 0)
		root.InsertChild(b, 1)

		CalculateLayout(root, Undefined, Undefined, DirectionLTR)

		if !approx(a.LayoutLeft(), tt.want[0]) || !approx(b.LayoutLeft(), tt.want[1]) {
			t.Errorf("%v: positions (%v, %v), want (%v, %v)",
				tt.justify, a.LayoutLeft(), b.LayoutLeft(), tt.want[0], tt.want[1])
		}
	}
}

func TestAlignItemsCenter(t *testing.T) {
	root := newRoot(200, 100, FlexDirectionRow)
	root.SetAlignItems(AlignCenter)

	child := NewNode()
	child.SetWidth(40)
	child.SetHeight(40)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	checkRect(t, "child", child, 0, 30, 40, 40)
}

func TestAlignSelfOverridesAlignItems(t *testing.T) {
	root := newRoot(200, 100, FlexDirectionRow)
	root.SetAlignItems(AlignFlexStart)

	child := NewNode()
	child.SetWidth(40)
	child.SetHeight(40)
	child.SetAlignSelf(AlignFlexEnd)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(child.LayoutTop(), 60) {
		t.Errorf("Align-self flex-end child top = %v, want 60", child.LayoutTop())
	}
}

func TestWrapAssignsLineIndexes(t *testing.T) {
	root := NewNode()
	root.SetWidth(100)
	root.SetFlexDirection(FlexDirectionRow)
	root.SetFlexWrap(WrapWrap)

	children := make([]*Node, 3)
	for i := range children {
		c := NewNode()
		c.SetWidth(60)
		c.SetHeight(20)
		root.InsertChild(c, i)
		children[i] = c
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	// Each 60-wide child overflows a 100-wide line, so each child lands
	// on its own line.
	for i, c := range children {
		if c.LineIndex() != i {
			t.Errorf("child%d line index = %d, want %d", i, c.LineIndex(), i)
		}
	}
	checkRect(t, "child0", children[0], 0, 0, 60, 20)
	checkRect(t, "child1", children[1], 0, 20, 60, 20)
	checkRect(t, "child2", children[2], 0, 40, 60, 20)

	if !approx(root.LayoutHeight(), 60) {
		t.Errorf("Wrapping container height = %v, want 60", root.LayoutHeight())
	}
}

func TestWrapTwoPerLine(t *testing.T) {
	root := NewNode()
	root.SetWidth(100)
	root.SetFlexDirection(FlexDirectionRow)
	root.SetFlexWrap(WrapWrap)

	children := make([]*Node, 3)
	for i := range children {
		c := NewNode()
		c.SetWidth(50)
		c.SetHeight(10)
		root.InsertChild(c, i)
		children[i] = c
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if children[0].LineIndex() != 0 || children[1].LineIndex() != 0 {
		t.Error("First two children should share line 0")
	}
	if children[2].LineIndex() != 1 {
		t.Errorf("Third child line index = %d, want 1", children[2].LineIndex())
	}
	checkRect(t, "child2", children[2], 0, 10, 50, 10)
}

func TestRTLRowReversesOrder(t *testing.T) {
	root := newRoot(200, 50, FlexDirectionRow)

	a := NewNode()
	a.SetWidth(50)
	a.SetHeight(50)
	b := NewNode()
	b.SetWidth(50)
	b.SetHeight(50)
	root.InsertChild(a, 0)
	root.InsertChild(b, 1)

	CalculateLayout(root, Undefined, Undefined, DirectionRTL)

	if root.LayoutDirection() != DirectionRTL {
		t.Errorf("Resolved direction = %v, want rtl", root.LayoutDirection())
	}
	if !approx(a.LayoutLeft(), 150) {
		t.Errorf("First child left = %v, want 150 (trailing edge first)", a.LayoutLeft())
	}
	if !approx(b.LayoutLeft(), 100) {
		t.Errorf("Second child left = %v, want 100", b.LayoutLeft())
	}
}

func TestAbsoluteChildWithOffsets(t *testing.T) {
	root := newRoot(200, 200, FlexDirectionColumn)

	child := NewNode()
	child.SetPositionType(PositionAbsolute)
	child.SetPosition(EdgeLeft, 10)
	child.SetPosition(EdgeTop, 20)
	child.SetWidth(30)
	child.SetHeight(40)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	checkRect(t, "absolute child", child, 10, 20, 30, 40)
	// Absolute children don't affect the parent's size.
	checkRect(t, "root", root, 0, 0, 200, 200)
}

func TestAbsoluteChildTrailingOffsets(t *testing.T) {
	root := newRoot(200, 200, FlexDirectionColumn)

	child := NewNode()
	child.SetPositionType(PositionAbsolute)
	child.SetPosition(EdgeRight, 10)
	child.SetPosition(EdgeBottom, 10)
	child.SetWidth(30)
	child.SetHeight(40)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(child.LayoutLeft(), 160) {
		t.Errorf("Right-anchored child left = %v, want 160", child.LayoutLeft())
	}
	if !approx(child.LayoutTop(), 150) {
		t.Errorf("Bottom-anchored child top = %v, want 150", child.LayoutTop())
	}
}

func TestAbsoluteChildSizedFromOppositeOffsets(t *testing.T) {
	root := newRoot(200, 200, FlexDirectionColumn)

	child := NewNode()
	child.SetPositionType(PositionAbsolute)
	child.SetPosition(EdgeLeft, 10)
	child.SetPosition(EdgeRight, 10)
	child.SetPosition(EdgeTop, 20)
	child.SetPosition(EdgeBottom, 20)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	checkRect(t, "stretched absolute child", child, 10, 20, 180, 160)
}

func TestFlexShrink(t *testing.T) {
	root := newRoot(100, 50, FlexDirectionRow)

	a := NewNode()
	a.SetFlexBasis(100)
	a.SetFlexShrink(1)
	b := NewNode()
	b.SetFlexBasis(100)
	b.SetFlexShrink(1)
	root.InsertChild(a, 0)
	root.InsertChild(b, 1)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(a.LayoutWidth(), 50) || !approx(b.LayoutWidth(), 50) {
		t.Errorf("Shrunk widths = (%v, %v), want (50, 50)", a.LayoutWidth(), b.LayoutWidth())
	}
	if !approx(b.LayoutLeft(), 50) {
		t.Errorf("Second child left = %v, want 50", b.LayoutLeft())
	}
}

func TestGrowRespectsMaxWidth(t *testing.T) {
	root := newRoot(300, 50, FlexDirectionRow)

	children := make([]*Node, 3)
	for i := range children {
		c := NewNode()
		c.SetFlexGrow(1)
		c.SetFlexBasis(0)
		root.InsertChild(c, i)
		children[i] = c
	}
	children[0].SetMaxWidth(50)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(children[0].LayoutWidth(), 50) {
		t.Errorf("Clamped child width = %v, want 50", children[0].LayoutWidth())
	}
	if !approx(children[1].LayoutWidth(), 125) || !approx(children[2].LayoutWidth(), 125) {
		t.Errorf("Free children widths = (%v, %v), want (125, 125)",
			children[1].LayoutWidth(), children[2].LayoutWidth())
	}
	if !approx(children[1].LayoutLeft(), 50) || !approx(children[2].LayoutLeft(), 175) {
		t.Errorf("Free children lefts = (%v, %v), want (50, 175)",
			children[1].LayoutLeft(), children[2].LayoutLeft())
	}
}

func TestShrinkRespectsMinWidth(t *testing.T) {
	root := newRoot(100, 50, FlexDirectionRow)

	a := NewNode()
	a.SetFlexBasis(100)
	a.SetFlexShrink(1)
	a.SetMinWidth(80)
	b := NewNode()
	b.SetFlexBasis(100)
	b.SetFlexShrink(1)
	root.InsertChild(a, 0)
	root.InsertChild(b, 1)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(a.LayoutWidth(), 80) {
		t.Errorf("Min-clamped child width = %v, want 80", a.LayoutWidth())
	}
	if !approx(b.LayoutWidth(), 20) {
		t.Errorf("Shrinking child width = %v, want 20", b.LayoutWidth())
	}
}

func TestPaddingAndBorderOffsetChildren(t *testing.T) {
	root := newRoot(100, 100, FlexDirectionColumn)
	root.SetPadding(EdgeAll, 10)
	root.SetBorder(EdgeAll, 5)

	child := NewNode()
	child.SetHeight(20)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	checkRect(t, "child", child, 15, 15, 70, 20)
}

func TestChildMarginOffsets(t *testing.T) {
	root := newRoot(100, 100, FlexDirectionColumn)

	child := NewNode()
	child.SetHeight(20)
	child.SetMargin(EdgeLeft, 5)
	child.SetMargin(EdgeTop, 7)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(child.LayoutLeft(), 5) || !approx(child.LayoutTop(), 7) {
		t.Errorf("Child offset = (%v, %v), want (5, 7)", child.LayoutLeft(), child.LayoutTop())
	}
	if !approx(child.LayoutWidth(), 95) {
		t.Errorf("Stretched child width = %v, want 95", child.LayoutWidth())
	}
}

func TestMeasureLeafSizesContainer(t *testing.T) {
	root := NewNode()

	leaf := NewNode()
	leaf.SetMeasureFunc(func(_ any, w float64, wm MeasureMode, h float64, hm MeasureMode) Size {
		return Size{Width: 42, Height: 17}
	})
	root.InsertChild(leaf, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(leaf.LayoutWidth(), 42) || !approx(leaf.LayoutHeight(), 17) {
		t.Errorf("Measured leaf = (%v, %v), want (42, 17)",
			leaf.LayoutWidth(), leaf.LayoutHeight())
	}
	if !approx(root.LayoutHeight(), 17) {
		t.Errorf("Content-sized container height = %v, want 17", root.LayoutHeight())
	}
}

func TestMeasureLeafPaddingAdded(t *testing.T) {
	root := NewNode()

	leaf := NewNode()
	leaf.SetPadding(EdgeAll, 4)
	leaf.SetMeasureFunc(func(_ any, w float64, wm MeasureMode, h float64, hm MeasureMode) Size {
		return Size{Width: 10, Height: 10}
	})
	root.InsertChild(leaf, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(leaf.LayoutWidth(), 18) || !approx(leaf.LayoutHeight(), 18) {
		t.Errorf("Padded measured leaf = (%v, %v), want (18, 18)",
			leaf.LayoutWidth(), leaf.LayoutHeight())
	}
}

func TestRelativeOffsetsApplied(t *testing.T) {
	root := newRoot(100, 100, FlexDirectionColumn)

	child := NewNode()
	child.SetHeight(20)
	child.SetPosition(EdgeLeft, 8)
	child.SetPosition(EdgeTop, 6)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(child.LayoutLeft(), 8) || !approx(child.LayoutTop(), 6) {
		t.Errorf("Relative child offset = (%v, %v), want (8, 6)",
			child.LayoutLeft(), child.LayoutTop())
	}
}

func TestLayoutClearsDirtyAndSetsHasNewLayout(t *testing.T) {
	root := newRoot(100, 100, FlexDirectionRow)
	for i := 0; i < 3; i++ {
		c := NewNode()
		c.SetFlexGrow(1)
		root.InsertChild(c, i)
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsDirty() {
			t.Error("Every node must be clean after layout")
		}
		if !n.HasNewLayout() {
			t.Error("Every node must report a new layout")
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
}

func TestMeasuredDimensionsRespectConstraints(t *testing.T) {
	root := newRoot(200, 200, FlexDirectionRow)

	child := NewNode()
	child.SetFlexGrow(1)
	child.SetMinWidth(20)
	child.SetMaxWidth(150)
	child.SetPadding(EdgeAll, 6)
	root.InsertChild(child, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if child.MeasuredWidth() < child.paddingAndBorderAxis(FlexDirectionRow) {
		t.Error("Measured width must not go below padding and border")
	}
	if child.MeasuredWidth() < 20 || child.MeasuredWidth() > 150 {
		t.Errorf("Measured width %v outside [20, 150]", child.MeasuredWidth())
	}
}

func TestChildrenFitWithinParentMain(t *testing.T) {
	root := newRoot(300, 60, FlexDirectionRow)
	widths := []float64{40, 60, 80}
	for i, w := range widths {
		c := NewNode()
		c.SetWidth(w)
		c.SetMargin(EdgeAll, 2)
		root.InsertChild(c, i)
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	sum := 0.0
	for i := 0; i < root.ChildCount(); i++ {
		c := root.Child(i)
		sum += c.MeasuredWidth() + c.marginAxis(FlexDirectionRow)
	}
	if sum > root.MeasuredWidth()+0.0001 {
		t.Errorf("Children main sizes %v exceed parent %v", sum, root.MeasuredWidth())
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	root := newRoot(320, 240, FlexDirectionRow)
	root.SetJustifyContent(JustifySpaceAround)
	root.SetAlignItems(AlignCenter)
	for i := 0; i < 4; i++ {
		c := NewNode()
		c.SetWidth(40)
		c.SetHeight(float64(10 + 10*i))
		root.InsertChild(c, i)
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	type rect struct{ l, t, w, h float64 }
	capture := func() []rect {
		var out []rect
		var walk func(n *Node)
		walk = func(n *Node) {
			out = append(out, rect{n.LayoutLeft(), n.LayoutTop(), n.LayoutWidth(), n.LayoutHeight()})
			for i := 0; i < n.ChildCount(); i++ {
				walk(n.Child(i))
			}
		}
		walk(root)
		return out
	}

	first := capture()
	CalculateLayout(root, Undefined, Undefined, DirectionLTR)
	second := capture()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Node %d moved between identical layouts: %+v -> %+v", i, first[i], second[i])
		}
	}
}

func TestSeparateEnginesAreIndependent(t *testing.T) {
	e1 := NewEngine()
	e2 := NewEngine()

	r1 := newRoot(100, 100, FlexDirectionRow)
	r2 := newRoot(100, 100, FlexDirectionRow)

	e1.CalculateLayout(r1, Undefined, Undefined, DirectionLTR)
	e2.CalculateLayout(r2, Undefined, Undefined, DirectionLTR)

	if e1.currentGenerationCount != 1 || e2.currentGenerationCount != 1 {
		t.Errorf("Engines share generation state: %d, %d",
			e1.currentGenerationCount, e2.currentGenerationCount)
	}
}

func TestAlignContentMultiLine(t *testing.T) {
	root := newRoot(100, 120, FlexDirectionRow)
	root.SetFlexWrap(WrapWrap)
	root.SetAlignContent(AlignCenter)
	root.SetAlignItems(AlignFlexStart)

	children := make([]*Node, 4)
	for i := range children {
		c := NewNode()
		c.SetWidth(50)
		c.SetHeight(20)
		root.InsertChild(c, i)
		children[i] = c
	}

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	// Two lines of height 20 in a 120-high container leave 80 to center:
	// lines start at 40 and 60.
	if !approx(children[0].LayoutTop(), 40) {
		t.Errorf("Line 0 top = %v, want 40", children[0].LayoutTop())
	}
	if !approx(children[2].LayoutTop(), 60) {
		t.Errorf("Line 1 top = %v, want 60", children[2].LayoutTop())
	}
}

func TestColumnReverseLaysOutBottomUp(t *testing.T) {
	root := newRoot(100, 100, FlexDirectionColumnReverse)

	a := NewNode()
	a.SetHeight(20)
	b := NewNode()
	b.SetHeight(30)
	root.InsertChild(a, 0)
	root.InsertChild(b, 1)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	if !approx(a.LayoutTop(), 80) {
		t.Errorf("First child top = %v, want 80 (anchored to the bottom)", a.LayoutTop())
	}
	if !approx(b.LayoutTop(), 50) {
		t.Errorf("Second child top = %v, want 50", b.LayoutTop())
	}
}

func TestOverflowScrollSkipsMainAtMostConstraint(t *testing.T) {
	root := NewNode()
	root.SetFlexDirection(FlexDirectionColumn)
	root.SetWidth(100)
	root.SetHeight(50)
	root.SetOverflow(OverflowScroll)

	measuredHeights := []float64{}
	leaf := NewNode()
	leaf.SetMeasureFunc(func(_ any, w float64, wm MeasureMode, h float64, hm MeasureMode) Size {
		measuredHeights = append(measuredHeights, h)
		return Size{Width: 10, Height: 200}
	})
	root.InsertChild(leaf, 0)

	CalculateLayout(root, Undefined, Undefined, DirectionLTR)

	// With overflow scroll on a column container the child is measured
	// without a height cap, so its basis keeps the full content height.
	if !approx(leaf.layout.computedFlexBasis, 200) {
		t.Errorf("Scroll container child basis = %v, want 200", leaf.layout.computedFlexBasis)
	}
}
