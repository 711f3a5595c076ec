package reconcile

import "fmt"

// Store operation names used in StoreError.
const (
	OpGet    = "get"
	OpUpsert = "upsert"
	OpClear  = "clear"
)

// StoreError wraps a persistence failure of a single store operation.
type StoreError struct {
	Op  string
	ID  int64
	Err error
}

func (e *StoreError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("store %s failed for entry %d: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
