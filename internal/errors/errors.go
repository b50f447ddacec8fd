package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidDataset is returned when the recipe file cannot be turned into a table
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrColumnNotFound is returned when a required column is absent
	ErrColumnNotFound = errors.New("column not found")

	// ErrColumnNotNumeric is returned when a column expected to hold numbers does not
	ErrColumnNotNumeric = errors.New("column not numeric")

	// ErrEmptySelection is returned when a computation needs at least one row and got none
	ErrEmptySelection = errors.New("empty selection")

	// ErrRenderFailed is returned when a chart cannot be drawn or encoded
	ErrRenderFailed = errors.New("render failed")
)

// ColumnNotFoundError represents a missing column with context
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// NewColumnNotFoundError creates a new ColumnNotFoundError
func NewColumnNotFoundError(column string) *ColumnNotFoundError {
	return &ColumnNotFoundError{Column: column}
}

// ColumnNotNumericError represents a non-numeric value in a numeric column
type ColumnNotNumericError struct {
	Column string
	Row    int
	Value  string
}

func (e *ColumnNotNumericError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("column '%s' has an empty value at row %d", e.Column, e.Row)
	}
	return fmt.Sprintf("column '%s' has non-numeric value '%s' at row %d", e.Column, e.Value, e.Row)
}

func (e *ColumnNotNumericError) Is(target error) bool {
	return target == ErrColumnNotNumeric
}

// NewColumnNotNumericError creates a new ColumnNotNumericError
func NewColumnNotNumericError(column string, row int, value string) *ColumnNotNumericError {
	return &ColumnNotNumericError{Column: column, Row: row, Value: value}
}

// DatasetError represents a structural problem in the source file
type DatasetError struct {
	Source  string
	Message string
}

func (e *DatasetError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid dataset '%s': %s", e.Source, e.Message)
	}
	return fmt.Sprintf("invalid dataset: %s", e.Message)
}

func (e *DatasetError) Is(target error) bool {
	return target == ErrInvalidDataset
}

// NewDatasetError creates a new DatasetError
func NewDatasetError(source, message string) *DatasetError {
	return &DatasetError{Source: source, Message: message}
}

// RenderError represents a chart rendering or encoding failure
type RenderError struct {
	Chart string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s: %v", e.Chart, e.Err)
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError
func NewRenderError(chart string, err error) *RenderError {
	return &RenderError{Chart: chart, Err: err}
}
