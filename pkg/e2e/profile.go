package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Errors returned by profile constructors and the Protect/Check operations.
// Use errors.Is to distinguish the two families.
var (
	// ErrInvalidConfig is returned by constructors when a configuration
	// parameter violates its profile's constraints.
	ErrInvalidConfig = validation.ErrInvalidConfig

	// ErrInvalidDataFormat is returned by Protect and Check when the
	// buffer length does not fit the configured layout. The profile's
	// counter state is left untouched.
	ErrInvalidDataFormat = validation.ErrInvalidDataFormat
)

// Profile is a stateful protection engine for one direction of one stream.
// Protect stamps the frame's protection header in place and advances the
// sender counter. Check verifies a received frame's header and advances the
// receiver state. Neither is safe for concurrent use; wrap a Profile in a
// mutex if frames arrive from multiple goroutines.
type Profile interface {
	Protect(data []byte) error
	Check(data []byte) (Status, error)
}

// sequenceStatus maps a counter classification onto the shared status set.
func sequenceStatus(c counter.Classification) Status {
	switch c {
	case counter.InSequence:
		return StatusOK
	case counter.Duplicate:
		return StatusRepeated
	case counter.SomeLost:
		return StatusOKSomeLost
	default:
		return StatusWrongSequence
	}
}
