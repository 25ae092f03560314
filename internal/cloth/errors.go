package cloth

import "errors"

// Domain errors for cloth construction and queries.
var (
	// ErrInvalidGeometry indicates a degenerate cloth: non-positive
	// physical dimensions or fewer than 2 particles along an axis.
	ErrInvalidGeometry = errors.New("cloth: invalid geometry")

	// ErrInvalidParams indicates simulation parameters outside their
	// valid range (non-positive step, negative iteration count).
	ErrInvalidParams = errors.New("cloth: invalid parameters")
)
