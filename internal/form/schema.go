package form

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrMissingField = errors.New("required field is empty")
	ErrFieldTooLong = errors.New("field exceeds maximum length")
)

// Field describes one text input of a form.
type Field struct {
	ID          string
	Label       string
	Placeholder string
	Multiline   bool
	Required    bool
	MaxLength   int // in characters; 0 means unlimited
}

// Schema is an ordered list of fields shown together as one dialog.
type Schema struct {
	ID     string
	Title  string
	Fields []Field
}

// Answers maps field IDs to submitted text.
type Answers map[string]string

// Get returns the answer for id, or "" when absent.
func (a Answers) Get(id string) string {
	return a[id]
}

// FieldError reports which field failed collection.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field.ID, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Collect checks submitted values against the schema and returns the answers
// for declared fields only. Values are kept exactly as typed.
func (s Schema) Collect(values map[string]string) (Answers, error) {
	answers := make(Answers, len(s.Fields))
	for _, f := range s.Fields {
		v := values[f.ID]
		if f.Required && strings.TrimSpace(v) == "" {
			return nil, &FieldError{Field: f, Err: ErrMissingField}
		}
		if f.MaxLength > 0 && utf8.RuneCountInString(v) > f.MaxLength {
			return nil, &FieldError{Field: f, Err: ErrFieldTooLong}
		}
		answers[f.ID] = v
	}
	return answers, nil
}
