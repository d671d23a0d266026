// The hashing primitive used everywhere in this system: transaction ids,
// Merkle values, block hashes, and interlink entries are all produced by
// the single H function below.
package crypto

import (
	"crypto/sha1" //nolint:gosec // spec-mandated 160-bit digest, not used for any security property beyond the toy PoW puzzle

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// H computes the deterministic 160-bit digest of a byte slice. Callers
// must always pass the UTF-8/binary bytes of a canonical encoding, never
// a Go string handed to the hasher by value alone (spec §9 — one source
// call path hashes bytes, another hashes the string object directly;
// this implementation only ever exposes the bytes form).
func H(data []byte) types.Digest {
	return types.Digest(sha1.Sum(data))
}

// HashTransaction computes a transaction's id from its canonical
// vin/vout encoding.
func HashTransaction(canonical []byte) types.Digest {
	return H(canonical)
}

// HashBlock computes a block's hash from the canonical encoding of the
// block with its BlockHash field excluded.
func HashBlock(canonical []byte) types.Digest {
	return H(canonical)
}
