package layout

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/som"
)

// BlockConfig holds configuration for block detection
type BlockConfig struct {
	// VerticalGapThreshold is the maximum vertical gap between two lines of
	// the same block, as a fraction of average line height (default: 1.5)
	VerticalGapThreshold float64

	// MergeOverlappingBlocks controls whether overlapping blocks should be merged
	MergeOverlappingBlocks bool

	// OverlapRatio is the fraction of the smaller block that must be covered
	// for two blocks to be merged (default: 0.3)
	OverlapRatio float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		VerticalGapThreshold:   1.5,
		MergeOverlappingBlocks: true,
		OverlapRatio:           0.3,
	}
}

// BlockDetector groups lines into fixed blocks
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a new block detector with default configuration
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		config: DefaultBlockConfig(),
	}
}

// NewBlockDetectorWithConfig creates a block detector with custom configuration
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{
		config: config,
	}
}

// openBlock is a block still accepting lines
type openBlock struct {
	id   som.NodeID
	last Line
	rect model.Rect
}

// Detect creates one detached FixedBlock per paragraph. Lines must be sorted
// top to bottom (as returned by LineDetector). A line continues the closest
// block above it that it overlaps horizontally, unless the vertical gap is
// too large or a horizontal rule runs between them.
func (d *BlockDetector) Detect(page *som.Page, lines []Line) ([]som.NodeID, error) {
	var blocks []*openBlock

	for _, line := range lines {
		target := d.findBlock(page, blocks, line)
		if target == nil {
			target = &openBlock{id: page.NewFixedBlock(), rect: model.EmptyRect()}
			blocks = append(blocks, target)
		}
		for _, id := range line.Elements {
			if err := page.Add(target.id, id); err != nil {
				return nil, errors.Wrap(err, "adding element to block")
			}
		}
		target.last = line
		target.rect = target.rect.Union(line.BBox)
	}

	ids := make([]som.NodeID, len(blocks))
	for i, b := range blocks {
		ids[i] = b.id
	}

	if d.config.MergeOverlappingBlocks {
		return d.mergeOverlappingBlocks(page, ids)
	}
	return ids, nil
}

// findBlock returns the block a line continues, or nil
func (d *BlockDetector) findBlock(page *som.Page, blocks []*openBlock, line Line) *openBlock {
	var best *openBlock
	bestGap := math.Inf(1)

	for _, b := range blocks {
		prev := b.last
		gap := line.BBox.Top() - prev.BBox.Bottom()
		avgHeight := (prev.Height + line.Height) / 2
		if gap > avgHeight*d.config.VerticalGapThreshold || gap < -avgHeight/2 {
			continue
		}
		if !horizontalOverlap(b.rect, line.BBox) {
			continue
		}
		if page.Lines().IsHorizontallySeparated(prev.BBox.Union(line.BBox)) {
			continue
		}
		if gap < bestGap {
			best, bestGap = b, gap
		}
	}
	return best
}

func horizontalOverlap(a, b model.Rect) bool {
	return a.Right() > b.Left() && b.Right() > a.Left()
}

// mergeOverlappingBlocks merges blocks that significantly overlap. The
// elements keep their ids; absorbed blocks are dropped from the result.
func (d *BlockDetector) mergeOverlappingBlocks(page *som.Page, blocks []som.NodeID) ([]som.NodeID, error) {
	if len(blocks) <= 1 {
		return blocks, nil
	}

	merged := make([]som.NodeID, 0, len(blocks))
	used := make([]bool, len(blocks))

	for i := 0; i < len(blocks); i++ {
		if used[i] {
			continue
		}

		for j := i + 1; j < len(blocks); j++ {
			if used[j] {
				continue
			}
			if d.blocksOverlap(page, blocks[i], blocks[j]) {
				if err := page.CombineBlocks(blocks[i], blocks[j]); err != nil {
					return nil, errors.Wrap(err, "merging overlapping blocks")
				}
				used[j] = true
			}
		}

		merged = append(merged, blocks[i])
	}

	return merged, nil
}

// blocksOverlap returns true if two blocks significantly overlap
func (d *BlockDetector) blocksOverlap(page *som.Page, a, b som.NodeID) bool {
	ba, _ := page.Box(a)
	bb, _ := page.Box(b)
	r1, r2 := ba.BoundingRect(), bb.BoundingRect()

	inter := r1.Intersection(r2)
	if inter.Area() == 0 {
		return false
	}
	smallerArea := math.Min(r1.Area(), r2.Area())
	return inter.Area() > smallerArea*d.config.OverlapRatio
}
