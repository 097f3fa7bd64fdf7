package castfile

import (
	"hash/fnv"

	uuid "github.com/satori/go.uuid"
)

// HashString returns the 64-bit FNV-1a hash of the UTF-8 bytes of s. This is
// the hash function used to derive canonical node hashes from names, such as
// material names referenced by meshes.
func HashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// GenerateHash returns a nonzero hash suitable for identifying a freshly
// created node. The hash is derived from a random UUID, so collisions with
// existing hashes are vanishingly unlikely; References.Get additionally
// regenerates on collision.
func GenerateHash() uint64 {
	for {
		ref := uuid.NewV4()
		h := fnv.New64a()
		h.Write(ref.Bytes())
		if sum := h.Sum64(); sum != 0 {
			return sum
		}
	}
}
