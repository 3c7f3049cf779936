package schedule

import "fmt"

// StructuralMismatchError is returned when a quota cannot fill the requested slots exactly
type StructuralMismatchError struct {
	Message string
	Total   int
	Slots   int
}

func (e *StructuralMismatchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("schedule structural mismatch: %s", e.Message)
	}
	return fmt.Sprintf("schedule structural mismatch: quota totals %d, need %d slots", e.Total, e.Slots)
}
