package eda

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned when the data is not a table, a labeled
	// sequence or a plain slice of values.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrMissingParameter is returned when a required argument was omitted.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrMissingColumn is returned when a named column is not in the table.
	ErrMissingColumn = errors.New("column not found")
)
