package som

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/fixedsom/model"
)

func TestLineRangesAddRangeIdempotent(t *testing.T) {
	r := NewLineRanges(10)
	r.AddRange(0, 10)
	r.AddRange(40, 50)
	before := append([]float64(nil), r.Start...)

	r.AddRange(0, 10)
	r.AddRange(40, 50)

	assert.Equal(t, before, r.Start)
	assert.Equal(t, []float64{10, 50}, r.End)
}

func TestLineRangesMerge(t *testing.T) {
	r := NewLineRanges(0)
	r.AddRange(14, 20)
	r.AddRange(0, 10)
	require.Equal(t, 2, r.Count())
	assert.Equal(t, []float64{0, 14}, r.Start)

	// within MinLineSeparation of the first range
	r.AddRange(12, 13)
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []float64{0}, r.Start)
	assert.Equal(t, []float64{20}, r.End)

	r.AddRange(60, 50)
	assert.Equal(t, []float64{0, 50}, r.Start)
	assert.Equal(t, []float64{20, 60}, r.End)

	// bridging both ranges
	r.AddRange(18, 52)
	assert.Equal(t, []float64{0}, r.Start)
	assert.Equal(t, []float64{60}, r.End)
}

func TestLineCollectionMergesNearbyLines(t *testing.T) {
	c := NewLineCollection()
	assert.True(t, c.IsEmpty())

	c.AddHorizontal(100, 0, 200)
	c.AddHorizontal(101, 150, 300)
	c.AddHorizontal(50, 0, 100)

	require.Len(t, c.Horizontal(), 2)
	assert.Equal(t, 50.0, c.Horizontal()[0].Line)
	assert.Equal(t, []float64{0}, c.Horizontal()[1].Start)
	assert.Equal(t, []float64{300}, c.Horizontal()[1].End)

	assert.Equal(t, 1, c.GetLineIndex(102))
	assert.Equal(t, 0, c.GetLineIndex(48))
	assert.Equal(t, -1, c.GetLineIndex(104.5))
	assert.Equal(t, -1, c.GetVerticalLineIndex(100))
}

func TestLineCollectionSeparation(t *testing.T) {
	c := NewLineCollection()
	c.AddHorizontal(100, 0, 300)
	c.AddVertical(50, 0, 100)

	assert.True(t, c.IsHorizontallySeparated(model.NewRect(10, 50, 110, 150)))
	// rule ends inside the box
	assert.False(t, c.IsHorizontallySeparated(model.NewRect(250, 50, 350, 150)))
	// rule on the boundary does not split
	assert.False(t, c.IsHorizontallySeparated(model.NewRect(10, 100, 110, 150)))
	// a short overhang is tolerated by the margin
	assert.True(t, c.IsHorizontallySeparated(model.NewRect(200, 50, 305, 150)))

	assert.True(t, c.IsVerticallySeparated(model.NewRect(0, 10, 100, 90)))
	assert.False(t, c.IsVerticallySeparated(model.NewRect(60, 10, 100, 90)))
	assert.False(t, c.IsVerticallySeparated(model.EmptyRect()))
}
