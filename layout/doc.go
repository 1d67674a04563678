// Package layout reconstructs the semantic object model of a fixed page
// from its primitives.
//
// The [PageConstructor] runs the whole pipeline:
//
//	page, err := layout.NewPageConstructor().Construct(fixedPage)
//
// # Detectors
//
// The constructor is built from smaller detectors that can be used on
// their own:
//
//   - [LineDetector] - groups text elements into lines
//   - [BlockDetector] - groups lines into fixed blocks
//   - [ColumnDetector] - finds side-by-side columns of containers
//
// Tables come from package tables; ruling lines from package ruling. Both
// also steer grouping: a rule between two lines keeps them in separate
// blocks and a vertical rule splits a line.
//
// # Configuration
//
// Each detector can be configured independently:
//
//	config := layout.DefaultConfig()
//	config.Block.VerticalGapThreshold = 2.0
//	config.DetectColumns = false
//	constructor := layout.NewPageConstructorWithConfig(config)
package layout
