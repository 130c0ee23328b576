package export

import (
	"fmt"

	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

// Error identifies the table, record and field that aborted a run.
type Error struct {
	Table    string
	RecordID string
	Field    string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.RecordID == "" && e.Field == "":
		return fmt.Sprintf("table %s: %v", e.Table, e.Err)
	case e.Field == "":
		return fmt.Sprintf("table %s, record %q: %v", e.Table, e.RecordID, e.Err)
	default:
		return fmt.Sprintf("table %s, record %q, field %s: %v", e.Table, e.RecordID, e.Field, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// field names a required column and its value.
type field struct {
	name  string
	value string
}

// requireFields returns an *Error for the first empty field.
func requireFields(recordID string, fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return &Error{RecordID: recordID, Field: f.name, Err: types.ErrMissingField}
		}
	}
	return nil
}

func fieldError(recordID, name string, err error) error {
	return &Error{RecordID: recordID, Field: name, Err: err}
}
