package flex

// cachedMeasurement records the inputs and outputs of one measurement or
// layout so that a compatible later query can skip the recursion.
type cachedMeasurement struct {
	availableWidth    float64
	availableHeight   float64
	widthMeasureMode  MeasureMode
	heightMeasureMode MeasureMode

	computedWidth  float64
	computedHeight float64
}

// canUseCachedMeasurement decides whether a cached entry satisfies a new
// measurement query. It is a pure predicate; the second result reports
// that the cached height must be narrowed to the new height bound before
// use (text nodes re-measured under a tighter AtMost height).
func canUseCachedMeasurement(isTextNode bool,
	availableWidth, availableHeight float64,
	marginRow, marginColumn float64,
	widthMeasureMode, heightMeasureMode MeasureMode,
	cached cachedMeasurement) (usable, narrowHeight bool) {

	isHeightSame := (cached.heightMeasureMode == MeasureModeUndefined &&
		heightMeasureMode == MeasureModeUndefined) ||
		(cached.heightMeasureMode == heightMeasureMode &&
			eq(cached.availableHeight, availableHeight))

	isWidthSame := (cached.widthMeasureMode == MeasureModeUndefined &&
		widthMeasureMode == MeasureModeUndefined) ||
		(cached.widthMeasureMode == widthMeasureMode &&
			eq(cached.availableWidth, availableWidth))

	if isHeightSame && isWidthSame {
		return true, false
	}

	isHeightValid := (cached.heightMeasureMode == MeasureModeUndefined &&
		heightMeasureMode == MeasureModeAtMost &&
		cached.computedHeight <= availableHeight-marginColumn) ||
		(heightMeasureMode == MeasureModeExactly &&
			eq(cached.computedHeight, availableHeight-marginColumn))

	if isWidthSame && isHeightValid {
		return true, false
	}

	isWidthValid := (cached.widthMeasureMode == MeasureModeUndefined &&
		widthMeasureMode == MeasureModeAtMost &&
		cached.computedWidth <= availableWidth-marginRow) ||
		(widthMeasureMode == MeasureModeExactly &&
			eq(cached.computedWidth, availableWidth-marginRow))

	if isHeightSame && isWidthValid {
		return true, false
	}

	if isHeightValid && isWidthValid {
		return true, false
	}

	// Text nodes admit some more specialized heuristics.
	if isTextNode {
		if isWidthSame {
			if heightMeasureMode == MeasureModeUndefined {
				// Width is the same and height is not restricted.
				return true, false
			}

			if heightMeasureMode == MeasureModeAtMost &&
				cached.computedHeight < availableHeight-marginColumn {
				// Width is the same and the height restriction is looser than
				// the cached height.
				return true, false
			}

			// Width is the same but the height restriction imposes a smaller
			// height than previously measured; the caller must narrow the
			// cached height to the new bound.
			return true, true
		}

		if cached.widthMeasureMode == MeasureModeUndefined {
			if widthMeasureMode == MeasureModeUndefined ||
				(widthMeasureMode == MeasureModeAtMost &&
					cached.computedWidth <= availableWidth-marginRow) {
				// Previously measured with no width restriction; a looser or
				// absent restriction is known to fit.
				return true, false
			}
		}
	}

	return false, false
}
