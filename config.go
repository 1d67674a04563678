package fixedsom

import (
	"github.com/go-playground/validator/v10"
	"github.com/tsawler/fixedsom/layout"
	"go.uber.org/zap"
)

// Config holds the tunables of a reconstruction run
type Config struct {
	// Concurrency is the number of pages analyzed at the same time
	Concurrency int `validate:"min=1,max=64"`

	// LineHeightTolerance is the vertical distance between element centers,
	// as a fraction of element height, under which elements share a line
	LineHeightTolerance float64 `validate:"gt=0"`

	// HorizontalGapThreshold is the gap, in line heights, that splits a line
	HorizontalGapThreshold float64 `validate:"gt=0"`

	// VerticalGapThreshold is the gap, in line heights, that ends a block
	VerticalGapThreshold float64 `validate:"gt=0"`

	// MinColumnGap is the narrowest whitespace gap that separates columns
	MinColumnGap float64 `validate:"gt=0"`

	DetectTables  bool
	DetectColumns bool

	// UseStructure builds the flow of pages that carry document-structure
	// hints from those hints instead of the reconstructed page
	UseStructure bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	line := layout.DefaultLineConfig()
	return Config{
		Concurrency:            1,
		LineHeightTolerance:    line.LineHeightTolerance,
		HorizontalGapThreshold: line.HorizontalGapThreshold,
		VerticalGapThreshold:   layout.DefaultBlockConfig().VerticalGapThreshold,
		MinColumnGap:           layout.DefaultColumnConfig().MinGapWidth,
		DetectTables:           true,
		DetectColumns:          true,
		UseStructure:           true,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// layoutConfig derives the page constructor configuration
func (c Config) layoutConfig(logger *zap.Logger) layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Line.LineHeightTolerance = c.LineHeightTolerance
	cfg.Line.HorizontalGapThreshold = c.HorizontalGapThreshold
	cfg.Block.VerticalGapThreshold = c.VerticalGapThreshold
	cfg.Column.MinGapWidth = c.MinColumnGap
	cfg.DetectTables = c.DetectTables
	cfg.DetectColumns = c.DetectColumns
	cfg.Logger = logger
	return cfg
}
