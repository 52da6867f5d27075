package engine

import (
	"errors"
	"fmt"
)

// ErrCycleInProgress is returned when a cycle is requested while another one
// is still running. Exactly one correlation cycle may run at a time.
var ErrCycleInProgress = errors.New("correlation cycle already in progress")

// EnrichmentError marks a failed enrichment lookup. The alert proceeds with
// the record's original fields.
type EnrichmentError struct {
	CveID string
	Err   error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrichment failed for %s: %v", e.CveID, e.Err)
}

func (e *EnrichmentError) Unwrap() error { return e.Err }

// StoreError marks an alert store or inventory failure. Store outages are
// the only failures that abort the running cycle; the next scheduled cycle
// is the retry mechanism.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStoreError reports whether err carries a StoreError anywhere in its chain
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
