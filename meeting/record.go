// Package meeting defines the structured record the parsing pipeline
// produces from one forwarded scheduling-confirmation email.
package meeting

import "fmt"

// Field keys of a meeting record.
const (
	FieldFrom            = "from"
	FieldDate            = "date" // DD/MM/YYYY
	FieldTime            = "time" // HH:MM
	FieldClient          = "client"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldAdditionalName  = "additional_name"
	FieldAdditionalPhone = "additional_phone"
	FieldAdditionalEmail = "additional_email"
)

// MinFields is the validity threshold: the sender address plus at least two
// meeting fields.
const MinFields = 3

// Record is an immutable set of extracted meeting fields. Records are built
// through a Builder and live for one pipeline invocation only.
type Record struct {
	fields map[string]string
}

// Get returns the value for a field key, or "" when absent.
func (r *Record) Get(key string) string {
	return r.fields[key]
}

// Has reports whether a field is populated with a non-empty value.
func (r *Record) Has(key string) bool {
	return r.fields[key] != ""
}

// Fields returns a copy of all populated fields.
func (r *Record) Fields() map[string]string {
	out := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// UnprocessableError is raised at the finalization boundary when a parse
// yielded fewer populated fields than a valid record requires.
type UnprocessableError struct {
	Got  int
	Need int
}

func (e *UnprocessableError) Error() string {
	return fmt.Sprintf("insufficient meeting details: got %d fields, need %d", e.Got, e.Need)
}

// Builder accumulates record fields during a pipeline run. Validity is only
// decided at Finalize, never mid-build.
type Builder struct {
	fields map[string]string
}

// NewBuilder creates an empty record builder.
func NewBuilder() *Builder {
	return &Builder{fields: make(map[string]string)}
}

// Set stores a field value. Empty values are dropped so they never count
// toward the validity threshold.
func (b *Builder) Set(key, value string) {
	if value == "" {
		return
	}
	b.fields[key] = value
}

// Len returns the number of populated fields.
func (b *Builder) Len() int {
	return len(b.fields)
}

// Finalize checks the validity threshold and returns the finished record.
func (b *Builder) Finalize() (*Record, error) {
	if len(b.fields) < MinFields {
		return nil, &UnprocessableError{Got: len(b.fields), Need: MinFields}
	}

	fields := make(map[string]string, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	return &Record{fields: fields}, nil
}
