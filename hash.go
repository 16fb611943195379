package json

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/edirooss/libjson/internal/siphash"
)

// hashKey holds the two uint64 halves of the process-wide SipHash key.
// spec.md §4.6 allows per-process randomization; this package randomizes
// at init via uuid.New(), a version-4 UUID whose 16 bytes (122 of them
// random bits; the version and variant bits are fixed) come from the
// same dependency the donor service uses for identifiers elsewhere.
type hashKey struct{ k0, k1 uint64 }

var processHashKey atomic.Pointer[hashKey]

func init() {
	id := uuid.New()
	b := id[:]
	k := &hashKey{
		k0: binary.BigEndian.Uint64(b[0:8]),
		k1: binary.BigEndian.Uint64(b[8:16]),
	}
	processHashKey.Store(k)
}

// SetHashKey overrides the process-wide SipHash key, letting tests pin a
// reproducible key. Iteration order is always insertion order regardless
// of the key (spec.md §9); this only affects bucket placement.
func SetHashKey(k0, k1 uint64) {
	processHashKey.Store(&hashKey{k0: k0, k1: k1})
}

func hashBytes(key []byte) uint64 {
	k := processHashKey.Load()
	return siphash.Sum64(k.k0, k.k1, key)
}
