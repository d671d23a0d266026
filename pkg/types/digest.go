// The fundamental building block. Every hash in this system — transaction
// ids, block hashes, Merkle values, interlink entries — is a 160-bit
// digest, same width as the SHA-1 output that produces it.

package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// DigestSize is the width of a digest in bytes (160 bits).
const DigestSize = 20

// Digest represents a 160-bit hash value.
type Digest [DigestSize]byte

// String returns the hex representation, used for printing and for
// canonical encoding of structures that embed a digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// NewDigestFromString parses a hex string into a Digest.
func NewDigestFromString(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != DigestSize {
		return d, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(b))
	}
	copy(d[:], b)
	return d, nil
}

// IsZero reports whether every byte of the digest is zero.
func (d Digest) IsZero() bool {
	for _, b := range d {
		if b != 0 {
			return false
		}
	}
	return true
}

// Int interprets the digest as a big-endian unsigned integer. Combining
// two digests, comparing against a difficulty target, and computing a
// superblock level are all defined in terms of this integer.
func (d Digest) Int() *big.Int {
	return new(big.Int).SetBytes(d[:])
}

// LeadingZeroBits counts the number of leading zero bits in the digest's
// big-endian integer representation. A Digest of all zero bits reports
// DigestSize*8.
func (d Digest) LeadingZeroBits() int {
	count := 0
	for _, b := range d {
		if b == 0 {
			count += 8
			continue
		}
		for mask := byte(0x80); mask > 0; mask >>= 1 {
			if b&mask != 0 {
				return count
			}
			count++
		}
	}
	return count
}

// Equal reports whether two digests hold the same bytes.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// DigestFromInt renders a big.Int back into a fixed-width, big-endian
// Digest, left-padding with zero bytes as needed. Used to give a
// difficulty target the same fixed width as a hash when counting its
// leading zero bits.
func DigestFromInt(n *big.Int) Digest {
	var d Digest
	b := n.Bytes()
	if len(b) > DigestSize {
		b = b[len(b)-DigestSize:]
	}
	copy(d[DigestSize-len(b):], b)
	return d
}

// emptyMerkleRoot is the fixed sentinel returned for a Merkle tree built
// over zero leaves (spec §4.B). The Python original documents it as "the
// Bitcoin genesis Merkle root, by convention" — that well-known constant
// is 32 bytes wide; here it is truncated to this system's 20-byte digest
// width (the high-order 20 bytes), keeping the sentinel recognizable
// without violating the fixed-width invariant every other Digest obeys.
var emptyMerkleRoot = Digest{
	0x4a, 0x5e, 0x1e, 0x4b, 0xaa, 0xb8, 0x9f, 0x3a, 0x32, 0x51,
	0x8a, 0x88, 0xc3, 0x1b, 0xc8, 0x7f, 0x61, 0x8f, 0x76, 0x67,
}

// EmptyMerkleRoot returns the sentinel Merkle root for an empty leaf set.
func EmptyMerkleRoot() Digest {
	return emptyMerkleRoot
}
