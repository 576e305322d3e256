package profile

import "errors"

var (
	// ErrLinkNotFound reports an update or delete against an id the collection
	// does not hold. The collection is left untouched.
	ErrLinkNotFound = errors.New("link not found")
	// ErrInvariantViolation reports a reorder that is not a permutation of the
	// current ids.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrInvalidAppearance reports an appearance value outside the closed enums.
	ErrInvalidAppearance = errors.New("invalid appearance")
)
