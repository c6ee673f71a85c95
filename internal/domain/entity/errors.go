package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup for an entity that does not exist, such as an
// unknown tenant. Callers match it with errors.Is.
var ErrNotFound = errors.New("entity not found")

// ValidationError reports a field that failed validation when loading seed
// data or persisting an entity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
