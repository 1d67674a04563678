package fixedsom

import (
	"go.uber.org/zap"
)

// options holds the configuration of one Reconstructor chain.
type options struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	config Config
	logger *zap.Logger
	title  string
}

// defaultOptions returns the default reconstruction options.
func defaultOptions() options {
	return options{
		pages:  nil, // nil means all pages
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
}

// clone creates a deep copy of options.
func (o options) clone() options {
	newOpts := options{
		config: o.config,
		logger: o.logger,
		title:  o.title,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
