package markup

import (
	"strconv"
	"strings"

	"github.com/chrisuehlinger/flexkit/flex"
)

// applyStyleAttribute parses a "prop: value; prop: value" inline style
// declaration and applies each property to the node. Unknown properties
// are ignored the way browsers ignore them; malformed declarations are an
// error.
func applyStyleAttribute(n *flex.Node, style string) error {
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}

		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			return ErrStyle("declaration without a colon: " + decl)
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.ToLower(strings.TrimSpace(value))

		if err := applyProperty(n, prop, value); err != nil {
			return err
		}
	}
	return nil
}

func applyProperty(n *flex.Node, prop, value string) error {
	switch prop {
	case "width":
		return applyLength(value, n.SetWidth)
	case "height":
		return applyLength(value, n.SetHeight)
	case "min-width":
		return applyLength(value, n.SetMinWidth)
	case "min-height":
		return applyLength(value, n.SetMinHeight)
	case "max-width":
		return applyLength(value, n.SetMaxWidth)
	case "max-height":
		return applyLength(value, n.SetMaxHeight)

	case "margin", "margin-left", "margin-top", "margin-right", "margin-bottom",
		"margin-start", "margin-end", "margin-horizontal", "margin-vertical":
		return applyEdgeLength(value, edgeOf(prop, "margin"), n.SetMargin)
	case "padding", "padding-left", "padding-top", "padding-right", "padding-bottom",
		"padding-start", "padding-end", "padding-horizontal", "padding-vertical":
		return applyEdgeLength(value, edgeOf(prop, "padding"), n.SetPadding)
	case "border-width", "border-left-width", "border-top-width",
		"border-right-width", "border-bottom-width":
		return applyEdgeLength(value, borderEdgeOf(prop), n.SetBorder)

	case "left":
		return applyEdgeLength(value, flex.EdgeLeft, n.SetPosition)
	case "top":
		return applyEdgeLength(value, flex.EdgeTop, n.SetPosition)
	case "right":
		return applyEdgeLength(value, flex.EdgeRight, n.SetPosition)
	case "bottom":
		return applyEdgeLength(value, flex.EdgeBottom, n.SetPosition)

	case "position":
		switch value {
		case "relative":
			n.SetPositionType(flex.PositionRelative)
		case "absolute":
			n.SetPositionType(flex.PositionAbsolute)
		default:
			return ErrStyle("unknown position: " + value)
		}
	case "direction":
		switch value {
		case "inherit":
			n.SetDirection(flex.DirectionInherit)
		case "ltr":
			n.SetDirection(flex.DirectionLTR)
		case "rtl":
			n.SetDirection(flex.DirectionRTL)
		default:
			return ErrStyle("unknown direction: " + value)
		}
	case "flex-direction":
		switch value {
		case "row":
			n.SetFlexDirection(flex.FlexDirectionRow)
		case "row-reverse":
			n.SetFlexDirection(flex.FlexDirectionRowReverse)
		case "column":
			n.SetFlexDirection(flex.FlexDirectionColumn)
		case "column-reverse":
			n.SetFlexDirection(flex.FlexDirectionColumnReverse)
		default:
			return ErrStyle("unknown flex-direction: " + value)
		}
	case "flex-wrap":
		switch value {
		case "nowrap":
			n.SetFlexWrap(flex.WrapNoWrap)
		case "wrap":
			n.SetFlexWrap(flex.WrapWrap)
		default:
			return ErrStyle("unknown flex-wrap: " + value)
		}
	case "justify-content":
		switch value {
		case "flex-start":
			n.SetJustifyContent(flex.JustifyFlexStart)
		case "center":
			n.SetJustifyContent(flex.JustifyCenter)
		case "flex-end":
			n.SetJustifyContent(flex.JustifyFlexEnd)
		case "space-between":
			n.SetJustifyContent(flex.JustifySpaceBetween)
		case "space-around":
			n.SetJustifyContent(flex.JustifySpaceAround)
		default:
			return ErrStyle("unknown justify-content: " + value)
		}
	case "align-items":
		align, err := parseAlign(value)
		if err != nil {
			return err
		}
		n.SetAlignItems(align)
	case "align-self":
		align, err := parseAlign(value)
		if err != nil {
			return err
		}
		n.SetAlignSelf(align)
	case "align-content":
		align, err := parseAlign(value)
		if err != nil {
			return err
		}
		n.SetAlignContent(align)
	case "overflow":
		switch value {
		case "visible":
			n.SetOverflow(flex.OverflowVisible)
		case "hidden":
			n.SetOverflow(flex.OverflowHidden)
		case "scroll":
			n.SetOverflow(flex.OverflowScroll)
		default:
			return ErrStyle("unknown overflow: " + value)
		}

	case "flex":
		return applyLength(value, n.SetFlex)
	case "flex-grow":
		return applyLength(value, n.SetFlexGrow)
	case "flex-shrink":
		return applyLength(value, n.SetFlexShrink)
	case "flex-basis":
		if value == "auto" {
			n.SetFlexBasis(flex.Undefined)
			return nil
		}
		return applyLength(value, n.SetFlexBasis)
	}

	// Unknown properties (colors, fonts, ...) are not layout inputs.
	return nil
}

func parseAlign(value string) (flex.Align, error) {
	switch value {
	case "auto":
		return flex.AlignAuto, nil
	case "flex-start":
		return flex.AlignFlexStart, nil
	case "center":
		return flex.AlignCenter, nil
	case "flex-end":
		return flex.AlignFlexEnd, nil
	case "stretch":
		return flex.AlignStretch, nil
	}
	return flex.AlignAuto, ErrStyle("unknown alignment: " + value)
}

func parseLength(value string) (float64, error) {
	value = strings.TrimSuffix(value, "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, ErrStyle("invalid length: " + value)
	}
	return f, nil
}

func applyLength(value string, set func(float64)) error {
	f, err := parseLength(value)
	if err != nil {
		return err
	}
	set(f)
	return nil
}

func applyEdgeLength(value string, edge flex.Edge, set func(flex.Edge, float64)) error {
	f, err := parseLength(value)
	if err != nil {
		return err
	}
	set(edge, f)
	return nil
}

func edgeOf(prop, prefix string) flex.Edge {
	switch strings.TrimPrefix(prop, prefix+"-") {
	case "left":
		return flex.EdgeLeft
	case "top":
		return flex.EdgeTop
	case "right":
		return flex.EdgeRight
	case "bottom":
		return flex.EdgeBottom
	case "start":
		return flex.EdgeStart
	case "end":
		return flex.EdgeEnd
	case "horizontal":
		return flex.EdgeHorizontal
	case "vertical":
		return flex.EdgeVertical
	}
	return flex.EdgeAll
}

func borderEdgeOf(prop string) flex.Edge {
	switch prop {
	case "border-left-width":
		return flex.EdgeLeft
	case "border-top-width":
		return flex.EdgeTop
	case "border-right-width":
		return flex.EdgeRight
	case "border-bottom-width":
		return flex.EdgeBottom
	}
	return flex.EdgeAll
}
