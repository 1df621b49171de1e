package types

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDSN              = errors.New("no database DSN provided. Use --dsn or the dsn field of a config file")
	ErrMissingIdentifierFilter = errors.New("no identifier filter provided. Use --identifier-filter or the identifier_filter field of a config file")
	ErrPartialPeriodOverride   = errors.New("--year and --period must be provided together")
)

// SchemaError reports an input row that is missing an expected field or
// carries an incompatible value. Key holds the natural key of the offending
// record so the row can be located in the source table.
type SchemaError struct {
	Source string
	Key    string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema mismatch in %s (record %s): %v", e.Source, e.Key, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
