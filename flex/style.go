package flex

// Style holds the input layout attributes of a node. All numeric fields
// use Undefined as the absence marker.
type Style struct {
	direction      Direction
	flexDirection  FlexDirection
	justifyContent Justify
	alignContent   Align
	alignItems     Align
	alignSelf      Align
	positionType   PositionType
	flexWrap       Wrap
	overflow       Overflow
	flexGrow       float64
	flexShrink     float64
	flexBasis      float64
	margin         [edgeCount]float64
	position       [edgeCount]float64
	padding        [edgeCount]float64
	border         [edgeCount]float64
	dimensions     [2]float64
	minDimensions  [2]float64
	maxDimensions  [2]float64
}

// computedEdgeValue resolves a concrete edge against the shorthand slots:
// per-edge, then vertical/horizontal, then all, then the start/end default.
func computedEdgeValue(edges *[edgeCount]float64, edge Edge, defaultValue float64) float64 {
	assertCond(edge <= EdgeEnd, "cannot get computed value of multi-edge shorthands")

	if !IsUndefined(edges[edge]) {
		return edges[edge]
	}

	if (edge == EdgeTop || edge == EdgeBottom) && !IsUndefined(edges[EdgeVertical]) {
		return edges[EdgeVertical]
	}

	if (edge == EdgeLeft || edge == EdgeRight || edge == EdgeStart || edge == EdgeEnd) &&
		!IsUndefined(edges[EdgeHorizontal]) {
		return edges[EdgeHorizontal]
	}

	if !IsUndefined(edges[EdgeAll]) {
		return edges[EdgeAll]
	}

	if edge == EdgeStart || edge == EdgeEnd {
		return Undefined
	}

	return defaultValue
}
