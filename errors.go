package lookerup

import (
	"github.com/pkg/errors"
)

// Errors returned by this package are wrapped with context;
// use errors.Cause to compare against these values.
var (
	// ErrConfiguration is returned when a table or strategy cannot be
	// constructed from the given window and pattern data.
	ErrConfiguration = errors.New("invalid lookup table configuration")
	// ErrKeyNotFound indicates a key whose window lengths do not match
	// the table it was looked up in.
	ErrKeyNotFound = errors.New("key not found in lookup table")
	// ErrInvalidRawValue is returned for a table entry that is neither
	// an action nor a probability in [0, 1].
	ErrInvalidRawValue = errors.New("invalid raw table value")
)
