package shared

import "errors"

// Error kinds shared across modules. Domain packages wrap these so callers
// can classify failures without importing every package's sentinels.
var (
	// ErrNotFound indicates a referenced resource is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
	// ErrInvalid indicates a request that can never succeed as given.
	ErrInvalid = errors.New("invalid")
	// ErrUnauthorized indicates a request without a resolved company identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsInvalid reports whether err wraps ErrInvalid.
func IsInvalid(err error) bool { return errors.Is(err, ErrInvalid) }

// IsUnauthorized reports whether err wraps ErrUnauthorized.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
