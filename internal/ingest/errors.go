package ingest

import (
	"errors"
	"fmt"
)

// ErrMissingInput is matched by every *MissingInputError.
var ErrMissingInput = errors.New("missing input dump")

// MissingInputError reports a dump file that is not present in the data directory.
type MissingInputError struct {
	File string
	Dir  string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input dump %s not found in %s", e.File, e.Dir)
}

// Is reports whether target is ErrMissingInput.
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// WriteError reports a batch the store rejected. Batch is 1-based per table.
type WriteError struct {
	Table string
	Batch int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s batch %d: %v", e.Table, e.Batch, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
