package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
)

func TestLineResults(t *testing.T) {
	page := som.NewPage(model.NewFixedPage(0, 600, 800))
	block := page.NewFixedBlock()
	for i, r := range []model.Rect{
		model.NewRect(0, 0, 20, 10),
		model.NewRect(25, 0, 45, 12),
		model.NewRect(0, 15, 20, 25),
	} {
		e := page.Register(som.NewElement(model.NewFixedNode(0, i), r, "w"))
		require.NoError(t, page.Add(block, e))
	}
	require.NoError(t, page.Add(page.Root(), block))

	lines := LineResults(page)
	require.Len(t, lines, 2)
	assert.Equal(t, model.NewRect(0, 0, 45, 12), lines[0].LayoutBox)
	assert.Equal(t, 12.0, lines[0].Baseline)
	assert.Len(t, lines[0].Nodes, 2)
	assert.Equal(t, model.NewRect(0, 15, 20, 25), lines[1].LayoutBox)
	assert.Equal(t, 25.0, lines[1].Baseline)

	assert.Equal(t, 0, FindLine(lines, model.Point{X: 30, Y: 5}))
	assert.Equal(t, 1, FindLine(lines, model.Point{X: 10, Y: 20}))
	assert.Equal(t, -1, FindLine(lines, model.Point{X: 10, Y: 13}))
	assert.Equal(t, -1, FindLine(lines, model.Point{X: 100, Y: 20}))
}
