package cache

import "fmt"

// ConversionError reports a value that could not be encoded into or decoded
// out of cache storage.
type ConversionError struct {
	TypeName string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cache data conversion failed for %s: %v", e.TypeName, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// CorruptedEntryError reports an entry whose content exists but whose
// parameters are missing or unreadable. Such entries are eligible for
// removal by the pruning pass.
type CorruptedEntryError struct {
	Key string
}

func (e *CorruptedEntryError) Error() string {
	return fmt.Sprintf("corrupted cache entry %s", e.Key)
}
