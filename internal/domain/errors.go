package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrInvalidSalary = errors.New("salary must be a finite number")
)

// SchemaError is fatal: the database or table could not be prepared.
type SchemaError struct {
	Stage string
	Err   error
}

func NewSchemaError(stage string, err error) *SchemaError {
	return &SchemaError{Stage: stage, Err: err}
}

func (e *SchemaError) Error() string {
	return "schema " + e.Stage + ": " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// StoreError is reported to the operator and the menu keeps running.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// InputFormatError means a typed field could not be parsed; the field is
// asked for again.
type InputFormatError struct {
	Field string
	Input string
	Kind  string
}

func NewInputFormatError(field, input, kind string) *InputFormatError {
	return &InputFormatError{Field: field, Input: input, Kind: kind}
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q for %s", e.Kind, e.Input, e.Field)
}

func IsInputFormatError(err error) bool {
	var inputErr *InputFormatError
	return errors.As(err, &inputErr)
}
