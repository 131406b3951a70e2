package csvimport

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile indicates the file has no content
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidEncoding indicates the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	// ErrMissingHeader indicates the header row is missing
	ErrMissingHeader = errors.New("header row is missing")
)

// RowError describes a problem with a single CSV row
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// NewRowError creates a row error for the given line and column
func NewRowError(line int, column, message string) RowError {
	return RowError{Line: line, Column: column, Message: message}
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %s: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// ErrorCollection accumulates row errors up to a cap so a broken file
// cannot balloon the report.
type ErrorCollection struct {
	limit  int
	total  int
	errors []RowError
}

// NewErrorCollection creates a collection that keeps at most limit errors
func NewErrorCollection(limit int) *ErrorCollection {
	if limit <= 0 {
		limit = 100
	}
	return &ErrorCollection{limit: limit}
}

// Add records an error, dropping it silently once the cap is reached
func (c *ErrorCollection) Add(err RowError) {
	c.total++
	if len(c.errors) < c.limit {
		c.errors = append(c.errors, err)
	}
}

// Errors returns the kept errors
func (c *ErrorCollection) Errors() []RowError {
	return c.errors
}

// TotalCount returns the number of errors seen, kept or not
func (c *ErrorCollection) TotalCount() int {
	return c.total
}

// IsTruncated reports whether errors were dropped
func (c *ErrorCollection) IsTruncated() bool {
	return c.total > len(c.errors)
}
