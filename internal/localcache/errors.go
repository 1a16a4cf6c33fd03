package localcache

import "fmt"

// StorageError describes a failed durable read or write. The cache logs these
// and keeps serving from memory; they never reach Handle callers.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("local storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
