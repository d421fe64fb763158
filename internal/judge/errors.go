package judge

import (
	"errors"
	"fmt"
)

// ErrTimedOut reports that polling exhausted its attempt budget. The
// remote job keeps running; only the local wait stops.
var ErrTimedOut = errors.New("timed out waiting for execution result")

// HTTPError carries a non-success backend response with its body intact,
// so the user sees the backend's diagnostic text verbatim.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}
