package flex

import "testing"

func cacheEntry(aw, ah float64, wm, hm MeasureMode, cw, ch float64) cachedMeasurement {
	return cachedMeasurement{
		availableWidth:    aw,
		availableHeight:   ah,
		widthMeasureMode:  wm,
		heightMeasureMode: hm,
		computedWidth:     cw,
		computedHeight:    ch,
	}
}

func TestCanUseCachedMeasurementSame(t *testing.T) {
	cached := cacheEntry(100, 50, MeasureModeExactly, MeasureModeExactly, 100, 50)

	usable, narrow := canUseCachedMeasurement(false, 100, 50, 0, 0,
		MeasureModeExactly, MeasureModeExactly, cached)
	if !usable || narrow {
		t.Error("Identical availability and modes should hit")
	}

	usable, _ = canUseCachedMeasurement(false, 100.00005, 50, 0, 0,
		MeasureModeExactly, MeasureModeExactly, cached)
	if !usable {
		t.Error("Availability within tolerance should hit")
	}

	usable, _ = canUseCachedMeasurement(false, 120, 50, 0, 0,
		MeasureModeExactly, MeasureModeExactly, cached)
	if usable {
		t.Error("Different exact width should miss")
	}
}

func TestCanUseCachedMeasurementUndefinedBoth(t *testing.T) {
	cached := cacheEntry(Undefined, Undefined, MeasureModeUndefined, MeasureModeUndefined, 40, 30)

	usable, _ := canUseCachedMeasurement(false, Undefined, Undefined, 0, 0,
		MeasureModeUndefined, MeasureModeUndefined, cached)
	if !usable {
		t.Error("Unconstrained query against unconstrained entry should hit")
	}
}

func TestCanUseCachedMeasurementValid(t *testing.T) {
	// Entry measured unconstrained, output 40x30.
	cached := cacheEntry(Undefined, Undefined, MeasureModeUndefined, MeasureModeUndefined, 40, 30)

	// AtMost query with room for the cached output is valid on both axes.
	usable, _ := canUseCachedMeasurement(false, 50, 35, 0, 0,
		MeasureModeAtMost, MeasureModeAtMost, cached)
	if !usable {
		t.Error("AtMost query with room for cached output should hit")
	}

	// AtMost query tighter than the cached output misses.
	usable, _ = canUseCachedMeasurement(false, 30, 35, 0, 0,
		MeasureModeAtMost, MeasureModeAtMost, cached)
	if usable {
		t.Error("AtMost query tighter than cached output should miss")
	}

	// Exactly query matching the cached output (minus margin) is valid.
	usable, _ = canUseCachedMeasurement(false, 45, 34, 5, 4,
		MeasureModeExactly, MeasureModeExactly, cached)
	if !usable {
		t.Error("Exactly query equal to cached output should hit")
	}
}

func TestCanUseCachedMeasurementTextHeuristics(t *testing.T) {
	cached := cacheEntry(100, 50, MeasureModeExactly, MeasureModeAtMost, 100, 30)

	// Same width, unrestricted height: text entries are reusable.
	usable, narrow := canUseCachedMeasurement(true, 100, Undefined, 0, 0,
		MeasureModeExactly, MeasureModeUndefined, cached)
	if !usable || narrow {
		t.Error("Text node with same width and no height bound should hit")
	}
	// A non-text node under the same circumstances misses.
	usable, _ = canUseCachedMeasurement(false, 100, Undefined, 0, 0,
		MeasureModeExactly, MeasureModeUndefined, cached)
	if usable {
		t.Error("Non-text node should not use the text heuristic")
	}

	// Same width, looser height bound than the cached height.
	usable, narrow = canUseCachedMeasurement(true, 100, 80, 0, 0,
		MeasureModeExactly, MeasureModeAtMost, cached)
	if !usable || narrow {
		t.Error("Looser height bound should reuse the entry unchanged")
	}

	// Same width, tighter height bound: reusable but the height must be
	// narrowed to the new bound.
	usable, narrow = canUseCachedMeasurement(true, 100, 20, 0, 0,
		MeasureModeExactly, MeasureModeAtMost, cached)
	if !usable {
		t.Error("Tighter height bound should still reuse the entry")
	}
	if !narrow {
		t.Error("Tighter height bound must request narrowing")
	}

	// Unconstrained cached width against a looser AtMost width.
	unconstrained := cacheEntry(Undefined, 50, MeasureModeUndefined, MeasureModeExactly, 40, 50)
	usable, _ = canUseCachedMeasurement(true, 60, 55, 0, 0,
		MeasureModeAtMost, MeasureModeExactly, unconstrained)
	if !usable {
		t.Error("Unconstrained cached width fitting a new AtMost bound should hit")
	}
}

func TestMeasurementCacheRingWraps(t *testing.T) {
	e := NewEngine()

	measureCount := 0
	leaf := NewNode()
	leaf.SetMeasureFunc(func(_ any, w float64, wm MeasureMode, h float64, hm MeasureMode) Size {
		measureCount++
		return Size{Width: 10, Height: 10}
	})

	root := NewNode()
	root.InsertChild(leaf, 0)

	// Fill past the ring capacity with distinct exact measurements.
	e.currentGenerationCount++
	for i := 0; i < maxCachedResultCount+4; i++ {
		w := float64(100 + i)
		e.layoutNodeInternal(leaf, w, w, DirectionLTR,
			MeasureModeExactly, MeasureModeExactly, false, "measure")
	}

	if leaf.layout.nextCachedMeasurementsIndex > maxCachedResultCount {
		t.Fatalf("Cache index %d exceeds capacity", leaf.layout.nextCachedMeasurementsIndex)
	}
	if leaf.layout.nextCachedMeasurementsIndex != 4 {
		t.Errorf("Ring should have wrapped to index 4, got %d", leaf.layout.nextCachedMeasurementsIndex)
	}
}

func TestCacheInvalidatedOnNewGenerationWhenDirty(t *testing.T) {
	measureCount := 0
	leaf := NewNode()
	leaf.SetMeasureFunc(func(_ any, w float64, wm MeasureMode, h float64, hm MeasureMode) Size {
		measureCount++
		return Size{Width: 10, Height: 10}
	})
	root := NewNode()
	root.InsertChild(leaf, 0)
	root.SetWidth(100)
	root.SetHeight(100)

	e := NewEngine()
	e.CalculateLayout(root, Undefined, Undefined, DirectionLTR)
	first := measureCount
	if first == 0 {
		t.Fatal("Measure function should be called on the first pass")
	}

	// A clean re-layout with identical inputs is served from the cache.
	e.CalculateLayout(root, Undefined, Undefined, DirectionLTR)
	if measureCount != first {
		t.Errorf("Clean re-layout should not re-measure, count went %d -> %d", first, measureCount)
	}

	// Dirtying the leaf forces a re-measure on the next generation.
	leaf.MarkDirty()
	e.CalculateLayout(root, Undefined, Undefined, DirectionLTR)
	if measureCount == first {
		t.Error("Dirty leaf should be re-measured on the next layout")
	}
}

func TestCacheInvalidatedOnParentDirectionChange(t *testing.T) {
	leaf := NewNode()
	root := NewNode()
	root.InsertChild(leaf, 0)
	root.SetWidth(100)
	root.SetHeight(100)

	e := NewEngine()
	e.CalculateLayout(root, Undefined, Undefined, DirectionLTR)
	if leaf.layout.lastParentDirection != DirectionLTR {
		t.Fatalf("Expected lastParentDirection ltr, got %v", leaf.layout.lastParentDirection)
	}

	e.CalculateLayout(root, Undefined, Undefined, DirectionRTL)
	if leaf.layout.lastParentDirection != DirectionRTL {
		t.Errorf("Direction change should force a revisit, got %v", leaf.layout.lastParentDirection)
	}
}
