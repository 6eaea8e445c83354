// Package intern turns transient byte views into owned, deduplicated
// strings.
//
// Records and spans returned by the stream package are non-owning views
// that the next engine call invalidates. Consumers that keep them -
// field names, enum-like column values, repeated tokens - intern them
// instead of copying each occurrence: equal byte sequences share one
// string allocation.
//
// Lookup is keyed by the xxHash64 of the bytes; hash collisions are
// resolved by content comparison, so interning is always exact.
//
// A Table follows the same single-task model as the scanning engine and
// is not safe for concurrent use.
package intern

import "github.com/cespare/xxhash/v2"

// Table is an intern table mapping byte sequences to owned strings.
//
// The zero value is not usable; create tables with NewTable.
type Table struct {
	// entries buckets interned strings by hash. Nearly every bucket
	// holds a single string; longer buckets exist only for genuine
	// xxHash64 collisions.
	entries map[uint64][]string
}

// NewTable creates an empty intern table.
func NewTable() *Table {
	return &Table{
		entries: make(map[uint64][]string),
	}
}

// Intern returns an owned string equal to data, allocating only the
// first time a given byte sequence is seen. The input slice is not
// retained and may be reused or invalidated by the caller afterwards.
func (t *Table) Intern(data []byte) string {
	h := xxhash.Sum64(data)

	bucket := t.entries[h]
	for _, s := range bucket {
		// The string(data) conversion in a comparison does not allocate.
		if s == string(data) {
			return s
		}
	}

	owned := string(data)
	t.entries[h] = append(bucket, owned)

	return owned
}

// Len returns the number of distinct strings interned.
func (t *Table) Len() int {
	n := 0
	for _, bucket := range t.entries {
		n += len(bucket)
	}

	return n
}

// Reset discards all interned strings while keeping the table usable.
func (t *Table) Reset() {
	clear(t.entries)
}
