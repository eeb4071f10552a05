package flex

import "testing"

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		node     Direction
		parent   Direction
		expected Direction
	}{
		{DirectionInherit, DirectionLTR, DirectionLTR},
		{DirectionInherit, DirectionRTL, DirectionRTL},
		{DirectionInherit, DirectionInherit, DirectionLTR},
		{DirectionLTR, DirectionRTL, DirectionLTR},
		{DirectionRTL, DirectionLTR, DirectionRTL},
	}

	for _, tt := range tests {
		n := NewNode()
		n.SetDirection(tt.node)
		if got := resolveDirection(n, tt.parent); got != tt.expected {
			t.Errorf("resolveDirection(%v, %v) = %v, want %v", tt.node, tt.parent, got, tt.expected)
		}
	}
}

func TestResolveAxis(t *testing.T) {
	tests := []struct {
		axis      FlexDirection
		direction Direction
		expected  FlexDirection
	}{
		{FlexDirectionRow, DirectionLTR, FlexDirectionRow},
		{FlexDirectionRow, DirectionRTL, FlexDirectionRowReverse},
		{FlexDirectionRowReverse, DirectionRTL, FlexDirectionRow},
		{FlexDirectionColumn, DirectionRTL, FlexDirectionColumn},
		{FlexDirectionColumnReverse, DirectionRTL, FlexDirectionColumnReverse},
	}

	for _, tt := range tests {
		if got := resolveAxis(tt.axis, tt.direction); got != tt.expected {
			t.Errorf("resolveAxis(%v, %v) = %v, want %v", tt.axis, tt.direction, got, tt.expected)
		}
	}
}

func TestCrossFlexDirection(t *testing.T) {
	if got := crossFlexDirection(FlexDirectionRow, DirectionLTR); got != FlexDirectionColumn {
		t.Errorf("Cross of row = %v, want column", got)
	}
	if got := crossFlexDirection(FlexDirectionColumn, DirectionLTR); got != FlexDirectionRow {
		t.Errorf("Cross of column (ltr) = %v, want row", got)
	}
	if got := crossFlexDirection(FlexDirectionColumn, DirectionRTL); got != FlexDirectionRowReverse {
		t.Errorf("Cross of column (rtl) = %v, want row-reverse", got)
	}
}

func TestStartEndOverrideOnRowAxis(t *testing.T) {
	n := NewNode()
	n.SetMargin(EdgeLeft, 10)
	n.SetMargin(EdgeStart, 3)

	if got := n.leadingMargin(FlexDirectionRow); got != 3 {
		t.Errorf("Start margin should override left on a row axis, got %v", got)
	}
	if got := n.leadingMargin(FlexDirectionColumn); got != 0 {
		t.Errorf("Start margin should not apply on a column axis, got %v", got)
	}

	n.SetMargin(EdgeEnd, 4)
	if got := n.trailingMargin(FlexDirectionRow); got != 4 {
		t.Errorf("End margin should override right on a row axis, got %v", got)
	}
}

func TestNegativePaddingAndBorderClampToZero(t *testing.T) {
	n := NewNode()
	n.SetPadding(EdgeLeft, -5)
	n.SetBorder(EdgeTop, -2)
	n.SetMargin(EdgeLeft, -7)

	if got := n.leadingPadding(FlexDirectionRow); got != 0 {
		t.Errorf("Negative padding should clamp to 0, got %v", got)
	}
	if got := n.leadingBorder(FlexDirectionColumn); got != 0 {
		t.Errorf("Negative border should clamp to 0, got %v", got)
	}
	if got := n.leadingMargin(FlexDirectionRow); got != -7 {
		t.Errorf("Negative margin should pass through, got %v", got)
	}
}

func TestBoundAxis(t *testing.T) {
	n := NewNode()
	n.SetMinWidth(10)
	n.SetMaxWidth(100)
	n.SetPadding(EdgeHorizontal, 4)

	if got := n.boundAxis(FlexDirectionRow, 50); got != 50 {
		t.Errorf("In-range value should be unchanged, got %v", got)
	}
	if got := n.boundAxis(FlexDirectionRow, 5); got != 10 {
		t.Errorf("Value below min should clamp to min, got %v", got)
	}
	if got := n.boundAxis(FlexDirectionRow, 500); got != 100 {
		t.Errorf("Value above max should clamp to max, got %v", got)
	}
	if got := n.boundAxis(FlexDirectionRow, 2); got != 10 {
		t.Errorf("Min should win over padding floor, got %v", got)
	}

	// Padding floor applies when no min is set.
	m := NewNode()
	m.SetPadding(EdgeHorizontal, 6)
	if got := m.boundAxis(FlexDirectionRow, 2); got != 12 {
		t.Errorf("Value should not go below padding+border, got %v", got)
	}

	// Negative constraints are ignored.
	p := NewNode()
	p.SetMaxWidth(-1)
	if got := p.boundAxis(FlexDirectionRow, 50); got != 50 {
		t.Errorf("Negative max should be ignored, got %v", got)
	}
}
