// Package hash provides the default row-hashing primitive used to fan
// out ObjectColumn.UpdateHash across its sub-columns.
package hash

import (
	"hash"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string. Used for quick,
// non-cryptographic identification (e.g. deduplicating path names).
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// NewDigest returns a new streaming hash.Hash64 backed by xxHash64.
// This is the default hasher threaded through ColumnOps.UpdateHash.
func NewDigest() hash.Hash64 {
	return xxhash.New()
}
