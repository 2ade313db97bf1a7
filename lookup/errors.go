package lookup

import "fmt"

// IncomparableKeysError reports that a newly derived key could not be
// ordered against the keys already present in a lookup's mapping. The key
// is rejected before it is added, so the mapping keeps only mutually
// ordered keys; when the key came from OnReplace, the position's previous
// entry has already been removed.
type IncomparableKeysError struct {
	Lookup string
	Key    any
}

func (e *IncomparableKeysError) Error() string {
	return fmt.Sprintf("lookup %q: key %v is not comparable with its existing keys", e.Lookup, e.Key)
}
