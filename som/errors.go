package som

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownNode is returned for ids that are not part of the arena
	ErrUnknownNode = errors.New("som: unknown node")

	// ErrAlreadyOwned is returned when adding a box that already has a parent
	ErrAlreadyOwned = errors.New("som: box already has a parent")

	// ErrInvalidChild is returned when a container cannot hold a box kind
	ErrInvalidChild = errors.New("som: invalid child kind")
)

// InvalidComparisonError reports two boxes that cannot be ordered: unknown
// ids, incompatible kinds, or a comparison that no rule could decide.
type InvalidComparisonError struct {
	A, B   NodeID
	Reason string
	Err    error
}

func (e *InvalidComparisonError) Error() string {
	return fmt.Sprintf("som: cannot compare %d and %d: %s", e.A, e.B, e.Reason)
}

// Unwrap returns the underlying sentinel, if any
func (e *InvalidComparisonError) Unwrap() error {
	return e.Err
}
