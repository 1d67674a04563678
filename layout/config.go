package layout

import (
	"go.uber.org/zap"
)

// Config holds configuration for page construction
type Config struct {
	Line   LineConfig
	Block  BlockConfig
	Column ColumnConfig

	// DetectTables enables table reconstruction from ruling lines
	DetectTables bool

	// DetectColumns enables grouping of side-by-side content into columns
	DetectColumns bool

	// Logger receives debug output about layout decisions. Nil disables
	// logging.
	Logger *zap.Logger
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Line:          DefaultLineConfig(),
		Block:         DefaultBlockConfig(),
		Column:        DefaultColumnConfig(),
		DetectTables:  true,
		DetectColumns: true,
	}
}
