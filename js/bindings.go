package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/flexkit/flex"
)

// nodeBinding ties a flex node to its goja object so script values can be
// unwrapped back into engine nodes.
type nodeBinding struct {
	node *flex.Node
	obj  *goja.Object
}

var edgeNames = map[string]flex.Edge{
	"left":       flex.EdgeLeft,
	"top":        flex.EdgeTop,
	"right":      flex.EdgeRight,
	"bottom":     flex.EdgeBottom,
	"start":      flex.EdgeStart,
	"end":        flex.EdgeEnd,
	"horizontal": flex.EdgeHorizontal,
	"vertical":   flex.EdgeVertical,
	"all":        flex.EdgeAll,
}

var flexDirectionNames = map[string]flex.FlexDirection{
	"row":            flex.FlexDirectionRow,
	"row-reverse":    flex.FlexDirectionRowReverse,
	"column":         flex.FlexDirectionColumn,
	"column-reverse": flex.FlexDirectionColumnReverse,
}

var justifyNames = map[string]flex.Justify{
	"flex-start":    flex.JustifyFlexStart,
	"center":        flex.JustifyCenter,
	"flex-end":      flex.JustifyFlexEnd,
	"space-between": flex.JustifySpaceBetween,
	"space-around":  flex.JustifySpaceAround,
}

var alignNames = map[string]flex.Align{
	"auto":       flex.AlignAuto,
	"flex-start": flex.AlignFlexStart,
	"center":     flex.AlignCenter,
	"flex-end":   flex.AlignFlexEnd,
	"stretch":    flex.AlignStretch,
}

var directionNames = map[string]flex.Direction{
	"inherit": flex.DirectionInherit,
	"ltr":     flex.DirectionLTR,
	"rtl":     flex.DirectionRTL,
}

// setupLayoutBindings installs createNode and calculateLayout globals.
func (r *Runtime) setupLayoutBindings() {
	r.vm.Set("createNode", func(call goja.FunctionCall) goja.Value {
		return r.bindNode(flex.NewNode())
	})

	r.vm.Set("calculateLayout", func(call goja.FunctionCall) goja.Value {
		b := r.unwrapNode(call.Argument(0))
		if b == nil {
			panic(r.vm.NewTypeError("calculateLayout expects a node"))
		}

		width := flex.Undefined
		if arg := call.Argument(1); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			width = arg.ToFloat()
		}
		height := flex.Undefined
		if arg := call.Argument(2); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			height = arg.ToFloat()
		}
		direction := flex.DirectionInherit
		if arg := call.Argument(3); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			d, ok := directionNames[arg.String()]
			if !ok {
				panic(r.vm.NewTypeError("unknown direction %q", arg.String()))
			}
			direction = d
		}

		r.engine.CalculateLayout(b.node, width, height, direction)
		return goja.Undefined()
	})
}

func (r *Runtime) unwrapNode(v goja.Value) *nodeBinding {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	bound := obj.Get("__binding")
	if bound == nil {
		return nil
	}
	b, ok := bound.Export().(*nodeBinding)
	if !ok {
		return nil
	}
	return b
}

// bindNode builds the JS object view of a flex node.
func (r *Runtime) bindNode(n *flex.Node) *goja.Object {
	obj := r.vm.NewObject()
	b := &nodeBinding{node: n, obj: obj}
	obj.Set("__binding", b)

	setLength := func(name string, set func(float64)) {
		obj.Set(name, func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0).ToFloat())
			return obj
		})
	}

	setLength("setWidth", n.SetWidth)
	setLength("setHeight", n.SetHeight)
	setLength("setMinWidth", n.SetMinWidth)
	setLength("setMinHeight", n.SetMinHeight)
	setLength("setMaxWidth", n.SetMaxWidth)
	setLength("setMaxHeight", n.SetMaxHeight)
	setLength("setFlex", n.SetFlex)
	setLength("setFlexGrow", n.SetFlexGrow)
	setLength("setFlexShrink", n.SetFlexShrink)
	setLength("setFlexBasis", n.SetFlexBasis)

	setEdge := func(name string, set func(flex.Edge, float64)) {
		obj.Set(name, func(call goja.FunctionCall) goja.Value {
			edge, ok := edgeNames[call.Argument(0).String()]
			if !ok {
				panic(r.vm.NewTypeError("unknown edge %q", call.Argument(0).String()))
			}
			set(edge, call.Argument(1).ToFloat())
			return obj
		})
	}

	setEdge("setMargin", n.SetMargin)
	setEdge("setPadding", n.SetPadding)
	setEdge("setBorder", n.SetBorder)
	setEdge("setPosition", n.SetPosition)

	obj.Set("setFlexDirection", func(call goja.FunctionCall) goja.Value {
		d, ok := flexDirectionNames[call.Argument(0).String()]
		if !ok {
			panic(r.vm.NewTypeError("unknown flex direction %q", call.Argument(0).String()))
		}
		n.SetFlexDirection(d)
		return obj
	})
	obj.Set("setJustifyContent", func(call goja.FunctionCall) goja.Value {
		j, ok := justifyNames[call.Argument(0).String()]
		if !ok {
			panic(r.vm.NewTypeError("unknown justify value %q", call.Argument(0).String()))
		}
		n.SetJustifyContent(j)
		return obj
	})
	obj.Set("setAlignItems", func(call goja.FunctionCall) goja.Value {
		a, ok := alignNames[call.Argument(0).String()]
		if !ok {
			panic(r.vm.NewTypeError("unknown align value %q", call.Argument(0).String()))
		}
		n.SetAlignItems(a)
		return obj
	})
	obj.Set("setAlignSelf", func(call goja.FunctionCall) goja.Value {
		a, ok := alignNames[call.Argument(0).String()]
		if !ok {
			panic(r.vm.NewTypeError("unknown align value %q", call.Argument(0).String()))
		}
		n.SetAlignSelf(a)
		return obj
	})
	obj.Set("setAlignContent", func(call goja.FunctionCall) goja.Value {
		a, ok := alignNames[call.Argument(0).String()]
		if !ok {
			panic(r.vm.NewTypeError("unknown align value %q", call.Argument(0).String()))
		}
		n.SetAlignContent(a)
		return obj
	})
	obj.Set("setDirection", func(call goja.FunctionCall) goja.Value {
		d, ok := directionNames[call.Argument(0).String()]
		if !ok {
			panic(r.vm.NewTypeError("unknown direction %q", call.Argument(0).String()))
		}
		n.SetDirection(d)
		return obj
	})
	obj.Set("setPositionType", func(call goja.FunctionCall) goja.Value {
		switch call.Argument(0).String() {
		case "relative":
			n.SetPositionType(flex.PositionRelative)
		case "absolute":
			n.SetPositionType(flex.PositionAbsolute)
		default:
			panic(r.vm.NewTypeError("unknown position type %q", call.Argument(0).String()))
		}
		return obj
	})
	obj.Set("setFlexWrap", func(call goja.FunctionCall) goja.Value {
		switch call.Argument(0).String() {
		case "nowrap":
			n.SetFlexWrap(flex.WrapNoWrap)
		case "wrap":
			n.SetFlexWrap(flex.WrapWrap)
		default:
			panic(r.vm.NewTypeError("unknown wrap value %q", call.Argument(0).String()))
		}
		return obj
	})

	obj.Set("insertChild", func(call goja.FunctionCall) goja.Value {
		child := r.unwrapNode(call.Argument(0))
		if child == nil {
			panic(r.vm.NewTypeError("insertChild expects a node"))
		}
		n.InsertChild(child.node, int(call.Argument(1).ToInteger()))
		return obj
	})
	obj.Set("removeChild", func(call goja.FunctionCall) goja.Value {
		child := r.unwrapNode(call.Argument(0))
		if child == nil {
			panic(r.vm.NewTypeError("removeChild expects a node"))
		}
		n.RemoveChild(child.node)
		return obj
	})
	obj.Set("childCount", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(n.ChildCount())
	})

	obj.Set("markDirty", func(call goja.FunctionCall) goja.Value {
		n.MarkDirty()
		return goja.Undefined()
	})
	obj.Set("isDirty", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(n.IsDirty())
	})

	obj.Set("setMeasureFunc", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(r.vm.NewTypeError("setMeasureFunc expects a function"))
		}
		n.SetMeasureFunc(func(_ any, width float64, widthMode flex.MeasureMode, height float64, heightMode flex.MeasureMode) flex.Size {
			result, err := fn(goja.Undefined(),
				r.vm.ToValue(width), r.vm.ToValue(widthMode.String()),
				r.vm.ToValue(height), r.vm.ToValue(heightMode.String()))
			if err != nil {
				return flex.Size{}
			}
			out, ok := result.(*goja.Object)
			if !ok {
				return flex.Size{}
			}
			return flex.Size{
				Width:  out.Get("width").ToFloat(),
				Height: out.Get("height").ToFloat(),
			}
		})
		return obj
	})

	layoutGetter := func(name string, get func() float64) {
		obj.Set(name, func(call goja.FunctionCall) goja.Value {
			return r.vm.ToValue(get())
		})
	}

	layoutGetter("layoutLeft", n.LayoutLeft)
	layoutGetter("layoutTop", n.LayoutTop)
	layoutGetter("layoutRight", n.LayoutRight)
	layoutGetter("layoutBottom", n.LayoutBottom)
	layoutGetter("layoutWidth", n.LayoutWidth)
	layoutGetter("layoutHeight", n.LayoutHeight)

	return obj
}
