package ingestion

import "fmt"

// InsufficientSourceError is returned when cleaned text is below the caller's minimum length
type InsufficientSourceError struct {
	Length int
	Min    int
}

func (e *InsufficientSourceError) Error() string {
	return fmt.Sprintf("insufficient source: %d characters after cleaning, need %d", e.Length, e.Min)
}

// Error represents a general ingestion error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
