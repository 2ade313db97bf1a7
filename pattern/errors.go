package pattern

import (
	"errors"
	"fmt"
)

// errSkip signals that a transformation step could not resolve a value for
// the given element (e.g. a keyed access missed). It is caught at the
// Chain.Apply boundary and never surfaces outside this package.
var errSkip = errors.New("pattern: skip")

// TransformationFailure wraps a non-skip error raised while applying a
// transformation chain. It is fatal: callers should treat it as aborting
// whatever operation triggered the transformation.
type TransformationFailure struct {
	Err error
}

func (e *TransformationFailure) Error() string {
	return fmt.Sprintf("pattern: transformation failed: %v", e.Err)
}

func (e *TransformationFailure) Unwrap() error { return e.Err }
