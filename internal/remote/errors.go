package remote

import (
	"errors"
	"fmt"
)

// NetworkError is returned for transport failures, non-2xx responses and
// undecodable snapshots. The client never retries.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s: endpoint returned status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
