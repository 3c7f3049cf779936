package exercise

import "fmt"

// Error represents an exercise assembly error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("exercise error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("exercise error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
