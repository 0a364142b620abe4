package tmdb

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a provider ID that does not exist upstream
var ErrNotFound = errors.New("tmdb: not found")

// Kind classifies a provider failure so callers can decide between retrying,
// skipping and giving up without parsing message text.
type Kind int

const (
	// KindTimeout is a request that exceeded its deadline
	KindTimeout Kind = iota
	// KindConnection is a network-level failure before any response
	KindConnection
	// KindMalformed is a response body that did not decode
	KindMalformed
	// KindRejected is a non-2xx status from the provider
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindMalformed:
		return "malformed"
	default:
		return "rejected"
	}
}

// Error is a classified provider failure
type Error struct {
	Kind    Kind
	Status  int // HTTP status for KindRejected, zero otherwise
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("tmdb: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("tmdb: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the failure is worth another attempt
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindConnection:
		return true
	case KindRejected:
		return e.Status == 429 || e.Status >= 500
	default:
		return false
	}
}
