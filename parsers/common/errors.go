// Package common provides shared pipeline utilities and error types
package common

import "fmt"

// RejectError indicates that an email should be rejected by policy rather
// than parsed: its sender domain is not in the allow-list.
type RejectError struct {
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("email rejected: %s", e.Reason)
}

// NewRejectError creates a new RejectError
func NewRejectError(reason string) *RejectError {
	return &RejectError{Reason: reason}
}

// FieldError indicates a field rule matched but produced an unexpected
// group shape. This signals a broken rule/data contract, not an absent
// field; absent fields are simply omitted from the record.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Message)
}

// NewFieldError creates a new FieldError
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
