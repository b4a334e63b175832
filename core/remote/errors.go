package remote

import "fmt"

// APIError is a non-2xx response from the store, with the server-provided
// message when one was parseable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api error (status %d)", e.Status)
	}
	return fmt.Sprintf("remote api error (status %d): %s", e.Status, e.Message)
}
