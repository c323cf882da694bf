// Package errors defines the domain error taxonomy shared by services and
// translated to HTTP status codes at the handler boundary.
package errors

import "fmt"

// DomainError is a typed error carried from the services to the transport
// layer. Status is the HTTP status the boundary should answer with.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithMessage returns a copy with a more specific message, keeping the code
// and status so errors.Is against the sentinel still matches.
func (e *DomainError) WithMessage(msg string) *DomainError {
	return &DomainError{Code: e.Code, Message: msg, Status: e.Status}
}

// Is matches by code, so wrapped copies compare equal to their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
