package pokeapi

import (
	"fmt"
)

// DecodeError represents an upstream payload that could not be decoded:
// either the body is not valid JSON or a required field is absent.
// Every required field's absence is an explicit, named failure so runs
// abort with a diagnosable message instead of a zero value.
type DecodeError struct {
	// Resource is the API resource kind (pokemon, pokemon-species,
	// evolution-chain).
	Resource string

	// Field is the missing required field, empty for malformed JSON.
	Field string

	// Err is the underlying unmarshal error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s resource: missing required field %q", e.Resource, e.Field)
	}
	return fmt.Sprintf("%s resource: invalid payload: %v", e.Resource, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// missingField builds a DecodeError for a required field that is absent.
func missingField(resource, field string) *DecodeError {
	return &DecodeError{Resource: resource, Field: field}
}
