package rest

import (
	"errors"
	"fmt"
)

// APIError is returned for any response outside the 2xx range. The raw
// response body is kept verbatim so callers (and log output) see exactly what
// the server said, including validation detail on 422 responses.
type APIError struct {
	StatusCode int
	Body       string
	Method     string
	URL        string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsStatus reports whether err wraps an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
