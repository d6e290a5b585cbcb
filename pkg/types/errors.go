package types

import (
	"errors"
	"fmt"
)

// ErrUnparsableFile reports that every parse strategy failed structurally.
// The orchestrator skips the file and continues with the next one.
var ErrUnparsableFile = errors.New("no parse strategy could read the file")

// SchemaError reports a failed drop or create statement during the
// destructive schema refresh. It aborts only the file being processed.
type SchemaError struct {
	Table string
	Stmt  string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema refresh for table %s: %v (statement: %s)", e.Table, e.Err, e.Stmt)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// InsertError reports a failed batch insert. FirstRow carries the first row
// of the batch for diagnosis; the table may be left empty or partially
// loaded, which the destructive-refresh design accepts.
type InsertError struct {
	Table    string
	Stmt     string
	FirstRow []any
	Err      error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert into table %s: %v (statement: %s; first row: %v)",
		e.Table, e.Err, e.Stmt, e.FirstRow)
}

func (e *InsertError) Unwrap() error { return e.Err }
