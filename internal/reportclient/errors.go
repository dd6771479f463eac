package reportclient

import (
	"fmt"
	"net/http"
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalogdb server returned HTTP %d: %s", e.StatusCode, e.Body)
}

// NotFound reports whether the server found no rows for the report.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
