package model

// ValidationError marks an error whose message is safe to echo back to
// the client. Anything else surfacing from a request is treated as an
// internal failure and hidden behind a generic response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}
