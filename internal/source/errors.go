package source

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when an endpoint answers with an empty list.
// Syncing an empty list would wipe the tables.
var ErrEmptyResponse = errors.New("empty response")

// APIError is a failed request to the AFS API.
type APIError struct {
	Endpoint   string
	StatusCode int // 0 when the request never got a response
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("afs %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("afs %s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("afs %s: %s", e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
