package dataset

import (
	"errors"
	"strings"
)

var (
	// ErrMissingColumns is matched by every MissingColumnsError
	ErrMissingColumns = errors.New("missing columns")
	// ErrNoNumericColumns is returned when a numeric view finds nothing to use
	ErrNoNumericColumns = errors.New("no numeric columns")
)

// MissingColumnsError names the columns a consumer needed but did not find
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing columns: " + strings.Join(e.Columns, ", ")
}

// Is lets errors.Is match ErrMissingColumns
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Require returns a *MissingColumnsError when t lacks any of the columns
func Require(t *Table, columns ...string) error {
	if missing := t.Missing(columns...); len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}
