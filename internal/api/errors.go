package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is returned for every failed request: transport failures
// (StatusCode 0), non-2xx responses and bodies that don't decode.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.StatusCode == http.StatusNotFound
}
