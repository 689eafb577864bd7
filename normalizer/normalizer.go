// Package normalizer turns provider payloads into the internal Place,
// Review and ReviewSummary model. Every decoder returns either a complete
// record or an error wrapping ErrUnavailable.
package normalizer

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrUnavailable marks a payload that cannot produce a record for this place.
var ErrUnavailable = errors.New("not available for this place")

var validate = validator.New(validator.WithRequiredStructEnabled())

func unavailable(kind, reason string) error {
	return fmt.Errorf("%s: %s: %w", kind, reason, ErrUnavailable)
}

// IsUnavailable reports whether err marks a missing feature rather than a failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
