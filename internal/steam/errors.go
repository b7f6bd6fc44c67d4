package steam

import (
	"errors"
	"fmt"
)

// ErrNotFound means Steam answered but has no data for the app.
var ErrNotFound = errors.New("steam: app not found")

// NetworkError wraps any failure talking to the Steam store.
type NetworkError struct {
	Op         string // "appdetails" or "appreviews"
	AppID      int
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("steam: %s %d: HTTP %d: %v", e.Op, e.AppID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("steam: %s %d: %v", e.Op, e.AppID, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsRetryable returns true for rate limits (429) and server errors (5xx).
func (e *NetworkError) IsRetryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
