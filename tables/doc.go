// Package tables detects ruled tables on fixed pages.
//
// A table is recognized from the horizontal and vertical rules drawn by
// path primitives (see package ruling). The [GridDetector] clusters rules
// that touch each other, groups aligned rules into grid lines and produces
// one [GridHypothesis] per cluster:
//
//	lines := ruling.NewExtractor().Extract(page)
//	for _, grid := range tables.DetectGrids(lines).Hypotheses {
//		for _, row := range grid.Cells {
//			...
//		}
//	}
//
// Cells not separated by a vertical rule within their row are merged and
// reported with a ColumnSpan greater than one.
//
// # Confidence Scoring
//
// Detection confidence (0-1) is based on:
//
//   - Cell count (30%)
//   - Grid regularity (30%)
//   - Border completeness (20%)
//   - Line coverage (20%)
package tables
