package tables

import (
	"math"
	"sort"

	"github.com/tsawler/fixedsom/model"
	"github.com/tsawler/fixedsom/ruling"
)

// GridDetector detects table grids from ruling lines
type GridDetector struct {
	// Tolerance for considering lines aligned (in points)
	AlignmentTolerance float64

	// Minimum number of aligned lines to form a grid axis
	MinAlignedLines int

	// Minimum line length to consider (in points)
	MinLineLength float64
}

// NewGridDetector creates a new grid detector with default settings
func NewGridDetector() *GridDetector {
	return &GridDetector{
		AlignmentTolerance: 3.0,  // 3 points tolerance
		MinAlignedLines:    2,    // At least 2 lines
		MinLineLength:      10.0, // At least 10 points long
	}
}

// Cell is one cell of a detected grid. A cell covering several grid
// columns (no rule between them within its row) has ColumnSpan > 1.
type Cell struct {
	Rect       model.Rect
	Row        int
	Col        int
	ColumnSpan int
}

// GridHypothesis represents a potential table grid detected from lines
type GridHypothesis struct {
	// Bounding box of the grid
	BBox model.Rect

	// Horizontal line positions (Y coordinates, sorted top to bottom)
	HorizontalLines []float64

	// Vertical line positions (X coordinates, sorted left to right)
	VerticalLines []float64

	// Confidence score (0-1)
	Confidence float64

	// Number of rows and columns
	Rows int
	Cols int

	// Whether the grid has complete borders
	HasTopBorder    bool
	HasBottomBorder bool
	HasLeftBorder   bool
	HasRightBorder  bool

	// Cells lists the cells of every row, left to right
	Cells [][]Cell

	// LineWidth is the average stroke width of the grid rules
	LineWidth float64
}

// AlignedLineGroup represents a group of lines aligned on an axis
type AlignedLineGroup struct {
	// Position on the alignment axis (X for vertical lines, Y for horizontal)
	Position float64

	// Lines in this group
	Lines []ruling.Line

	// Total coverage (sum of line lengths)
	TotalLength float64

	// Span of the lines (min to max on the perpendicular axis)
	MinExtent float64
	MaxExtent float64
}

// DetectFromLines detects grid hypotheses from horizontal and vertical
// lines. Lines are first split into connected clusters so that every
// separate ruled table on a page yields its own hypothesis. Hypotheses are
// returned top to bottom.
func (gd *GridDetector) DetectFromLines(horizontals, verticals []ruling.Line) []*GridHypothesis {
	// Filter lines by minimum length
	horizontals = gd.filterByLength(horizontals)
	verticals = gd.filterByLength(verticals)

	if len(horizontals) < gd.MinAlignedLines || len(verticals) < gd.MinAlignedLines {
		return nil
	}

	var hypotheses []*GridHypothesis
	for _, cluster := range gd.clusterLines(horizontals, verticals) {
		hGroups := gd.groupAlignedLines(cluster.horizontals, true)
		vGroups := gd.groupAlignedLines(cluster.verticals, false)

		if len(hGroups) < gd.MinAlignedLines || len(vGroups) < gd.MinAlignedLines {
			continue
		}
		if h := gd.findGrid(hGroups, vGroups); h != nil {
			hypotheses = append(hypotheses, h)
		}
	}

	sort.Slice(hypotheses, func(i, j int) bool {
		if hypotheses[i].BBox.Top() != hypotheses[j].BBox.Top() {
			return hypotheses[i].BBox.Top() < hypotheses[j].BBox.Top()
		}
		return hypotheses[i].BBox.Left() < hypotheses[j].BBox.Left()
	})
	return hypotheses
}

// filterByLength filters lines by minimum length
func (gd *GridDetector) filterByLength(lines []ruling.Line) []ruling.Line {
	result := make([]ruling.Line, 0, len(lines))
	for _, line := range lines {
		if line.Length() >= gd.MinLineLength {
			result = append(result, line)
		}
	}
	return result
}

type lineCluster struct {
	horizontals []ruling.Line
	verticals   []ruling.Line
}

// clusterLines splits lines into groups of lines that touch each other,
// directly or through other lines of the group
func (gd *GridDetector) clusterLines(horizontals, verticals []ruling.Line) []lineCluster {
	all := make([]ruling.Line, 0, len(horizontals)+len(verticals))
	all = append(all, horizontals...)
	all = append(all, verticals...)

	parent := make([]int, len(all))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	tol := gd.AlignmentTolerance
	boxes := make([]model.Rect, len(all))
	for i, l := range all {
		boxes[i] = l.BBox().Inflate(tol, tol)
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if boxes[i].Intersects(boxes[j]) {
				parent[find(i)] = find(j)
			}
		}
	}

	index := make(map[int]int)
	var clusters []lineCluster
	for i, l := range all {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(clusters)
			index[root] = k
			clusters = append(clusters, lineCluster{})
		}
		if i < len(horizontals) {
			clusters[k].horizontals = append(clusters[k].horizontals, l)
		} else {
			clusters[k].verticals = append(clusters[k].verticals, l)
		}
	}
	return clusters
}

// groupAlignedLines groups lines that are aligned on the same axis
func (gd *GridDetector) groupAlignedLines(lines []ruling.Line, isHorizontal bool) []AlignedLineGroup {
	if len(lines) == 0 {
		return nil
	}

	// Sort lines by position
	positions := make([]float64, len(lines))
	for i, line := range lines {
		if isHorizontal {
			positions[i] = (line.Start.Y + line.End.Y) / 2
		} else {
			positions[i] = (line.Start.X + line.End.X) / 2
		}
	}

	indices := make([]int, len(lines))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool {
		return positions[indices[i]] < positions[indices[j]]
	})

	// Group lines by position
	var groups []AlignedLineGroup
	currentGroup := AlignedLineGroup{
		Position: positions[indices[0]],
		Lines:    []ruling.Line{lines[indices[0]]},
	}

	for i := 1; i < len(indices); i++ {
		idx := indices[i]
		pos := positions[idx]

		if pos-currentGroup.Position <= gd.AlignmentTolerance {
			currentGroup.Lines = append(currentGroup.Lines, lines[idx])
			// Update position to average
			currentGroup.Position = (currentGroup.Position*float64(len(currentGroup.Lines)-1) + pos) / float64(len(currentGroup.Lines))
		} else {
			finalizeGroup(&currentGroup, isHorizontal)
			groups = append(groups, currentGroup)

			currentGroup = AlignedLineGroup{
				Position: pos,
				Lines:    []ruling.Line{lines[idx]},
			}
		}
	}

	finalizeGroup(&currentGroup, isHorizontal)
	groups = append(groups, currentGroup)

	return groups
}

// extent returns the span of a line along its own direction
func extent(line ruling.Line, isHorizontal bool) (float64, float64) {
	if isHorizontal {
		return math.Min(line.Start.X, line.End.X), math.Max(line.Start.X, line.End.X)
	}
	return math.Min(line.Start.Y, line.End.Y), math.Max(line.Start.Y, line.End.Y)
}

// finalizeGroup calculates final metrics for an aligned line group
func finalizeGroup(group *AlignedLineGroup, isHorizontal bool) {
	if len(group.Lines) == 0 {
		return
	}

	group.TotalLength = 0
	group.MinExtent = math.MaxFloat64
	group.MaxExtent = -math.MaxFloat64

	for _, line := range group.Lines {
		group.TotalLength += line.Length()
		minVal, maxVal := extent(line, isHorizontal)
		group.MinExtent = math.Min(group.MinExtent, minVal)
		group.MaxExtent = math.Max(group.MaxExtent, maxVal)
	}
}

// findGrid builds the grid hypothesis of one line cluster
func (gd *GridDetector) findGrid(hGroups, vGroups []AlignedLineGroup) *GridHypothesis {
	// Left/Right come from vertical line positions, Top/Bottom from
	// horizontal ones
	gridLeft := minPosition(vGroups)
	gridRight := maxPosition(vGroups)
	gridTop := minPosition(hGroups)
	gridBottom := maxPosition(hGroups)

	if gridRight <= gridLeft || gridBottom <= gridTop {
		return nil
	}

	// Keep only lines that span a significant portion of the grid
	relevantH := filterGroupsByExtent(hGroups, gridLeft, gridRight)
	relevantV := filterGroupsByExtent(vGroups, gridTop, gridBottom)

	if len(relevantH) < gd.MinAlignedLines || len(relevantV) < gd.MinAlignedLines {
		return nil
	}

	sort.Slice(relevantH, func(i, j int) bool {
		return relevantH[i].Position < relevantH[j].Position
	})
	sort.Slice(relevantV, func(i, j int) bool {
		return relevantV[i].Position < relevantV[j].Position
	})

	hypothesis := &GridHypothesis{
		BBox:            model.NewRect(gridLeft, gridTop, gridRight, gridBottom),
		HorizontalLines: make([]float64, len(relevantH)),
		VerticalLines:   make([]float64, len(relevantV)),
		Rows:            len(relevantH) - 1,
		Cols:            len(relevantV) - 1,
	}

	for i, g := range relevantH {
		hypothesis.HorizontalLines[i] = g.Position
	}
	for i, g := range relevantV {
		hypothesis.VerticalLines[i] = g.Position
	}

	hypothesis.HasTopBorder = math.Abs(relevantH[0].Position-gridTop) < gd.AlignmentTolerance
	hypothesis.HasBottomBorder = math.Abs(relevantH[len(relevantH)-1].Position-gridBottom) < gd.AlignmentTolerance
	hypothesis.HasLeftBorder = math.Abs(relevantV[0].Position-gridLeft) < gd.AlignmentTolerance
	hypothesis.HasRightBorder = math.Abs(relevantV[len(relevantV)-1].Position-gridRight) < gd.AlignmentTolerance

	if hypothesis.Rows <= 0 || hypothesis.Cols <= 0 {
		return nil
	}

	hypothesis.Cells = gd.buildCells(hypothesis, relevantV)
	hypothesis.LineWidth = averageWidth(relevantH, relevantV)
	hypothesis.Confidence = calculateConfidence(hypothesis, relevantH, relevantV)

	return hypothesis
}

// buildCells lays out the cells of each row. Adjacent grid columns merge
// when no vertical rule separates them within the row.
func (gd *GridDetector) buildCells(h *GridHypothesis, vGroups []AlignedLineGroup) [][]Cell {
	rows := make([][]Cell, h.Rows)
	for i := 0; i < h.Rows; i++ {
		top, bottom := h.HorizontalLines[i], h.HorizontalLines[i+1]
		for j := 0; j < h.Cols; {
			span := 1
			for j+span < h.Cols && !gd.separates(vGroups[j+span], top, bottom) {
				span++
			}
			rows[i] = append(rows[i], Cell{
				Rect:       model.NewRect(h.VerticalLines[j], top, h.VerticalLines[j+span], bottom),
				Row:        i,
				Col:        j,
				ColumnSpan: span,
			})
			j += span
		}
	}
	return rows
}

// separates reports whether the lines of a vertical group cover the band
// [top, bottom], up to the alignment tolerance at each end
func (gd *GridDetector) separates(group AlignedLineGroup, top, bottom float64) bool {
	covered := 0.0
	for _, line := range group.Lines {
		lo, hi := extent(line, false)
		lo = math.Max(lo, top)
		hi = math.Min(hi, bottom)
		if hi > lo {
			covered += hi - lo
		}
	}
	return covered >= (bottom-top)-2*gd.AlignmentTolerance
}

// minPosition returns the minimum position across all groups
func minPosition(groups []AlignedLineGroup) float64 {
	if len(groups) == 0 {
		return 0
	}

	min := groups[0].Position
	for _, g := range groups[1:] {
		if g.Position < min {
			min = g.Position
		}
	}
	return min
}

// maxPosition returns the maximum position across all groups
func maxPosition(groups []AlignedLineGroup) float64 {
	if len(groups) == 0 {
		return 0
	}

	max := groups[0].Position
	for _, g := range groups[1:] {
		if g.Position > max {
			max = g.Position
		}
	}
	return max
}

// filterGroupsByExtent filters groups that have lines spanning the given extent
func filterGroupsByExtent(groups []AlignedLineGroup, minExtent, maxExtent float64) []AlignedLineGroup {
	var result []AlignedLineGroup

	for _, g := range groups {
		// At least 50% coverage of the grid extent
		coverage := g.MaxExtent - g.MinExtent
		requiredCoverage := (maxExtent - minExtent) * 0.5

		if coverage >= requiredCoverage {
			overlapMin := math.Max(g.MinExtent, minExtent)
			overlapMax := math.Min(g.MaxExtent, maxExtent)
			if overlapMax > overlapMin {
				result = append(result, g)
			}
		}
	}

	return result
}

func averageWidth(hGroups, vGroups []AlignedLineGroup) float64 {
	total, n := 0.0, 0
	for _, groups := range [][]AlignedLineGroup{hGroups, vGroups} {
		for _, g := range groups {
			for _, l := range g.Lines {
				total += l.Width
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// calculateConfidence calculates a confidence score for a grid hypothesis
func calculateConfidence(h *GridHypothesis, hGroups, vGroups []AlignedLineGroup) float64 {
	score := 0.0

	// Factor 1: Number of cells (more cells = higher confidence, up to a point)
	cellCount := h.Rows * h.Cols
	if cellCount >= 4 {
		score += 0.2
	}
	if cellCount >= 9 {
		score += 0.1
	}

	// Factor 2: Grid regularity (similar row heights and column widths)
	score += calculateRegularity(h) * 0.3

	// Factor 3: Border completeness
	borderScore := 0.0
	for _, present := range []bool{h.HasTopBorder, h.HasBottomBorder, h.HasLeftBorder, h.HasRightBorder} {
		if present {
			borderScore += 0.25
		}
	}
	score += borderScore * 0.2

	// Factor 4: Line coverage (how much of the grid is covered by actual lines)
	score += calculateLineCoverage(h, hGroups, vGroups) * 0.2

	return math.Min(1.0, score)
}

// calculateRegularity measures how regular the grid spacing is
func calculateRegularity(h *GridHypothesis) float64 {
	rowScore := 1.0
	if h.Rows > 1 {
		rowHeights := make([]float64, h.Rows)
		for i := 0; i < h.Rows; i++ {
			rowHeights[i] = h.HorizontalLines[i+1] - h.HorizontalLines[i]
		}
		rowScore = math.Max(0, 1-coefficientOfVariation(rowHeights))
	}

	colScore := 1.0
	if h.Cols > 1 {
		colWidths := make([]float64, h.Cols)
		for i := 0; i < h.Cols; i++ {
			colWidths[i] = h.VerticalLines[i+1] - h.VerticalLines[i]
		}
		colScore = math.Max(0, 1-coefficientOfVariation(colWidths))
	}

	return (rowScore + colScore) / 2
}

// calculateLineCoverage calculates what fraction of grid lines have actual
// drawn lines
func calculateLineCoverage(h *GridHypothesis, hGroups, vGroups []AlignedLineGroup) float64 {
	totalExpected := float64(len(h.HorizontalLines) + len(h.VerticalLines))
	if totalExpected == 0 {
		return 0
	}

	actualCount := float64(len(hGroups) + len(vGroups))
	return math.Min(1.0, actualCount/totalExpected)
}

// coefficientOfVariation calculates CV (std dev / mean)
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := 0.0
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))

	if m == 0 {
		return 0
	}

	v := 0.0
	for _, val := range values {
		diff := val - m
		v += diff * diff
	}
	v /= float64(len(values))

	return math.Sqrt(v) / m
}

// GridDetectionResult contains the result of grid detection
type GridDetectionResult struct {
	// All detected grid hypotheses, top to bottom
	Hypotheses []*GridHypothesis

	// Statistics about the detection
	TotalHorizontalLines int
	TotalVerticalLines   int
}

// DetectGrids runs the detector over the ruling lines of a page
func (gd *GridDetector) DetectGrids(lines *ruling.Result) *GridDetectionResult {
	if lines == nil {
		return &GridDetectionResult{}
	}
	horizontals := lines.Horizontals()
	verticals := lines.Verticals()

	return &GridDetectionResult{
		Hypotheses:           gd.DetectFromLines(horizontals, verticals),
		TotalHorizontalLines: len(horizontals),
		TotalVerticalLines:   len(verticals),
	}
}

// DetectGrids is a convenience function for grid detection with default
// settings
func DetectGrids(lines *ruling.Result) *GridDetectionResult {
	return NewGridDetector().DetectGrids(lines)
}
