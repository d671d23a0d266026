// Difficulty and superblock level: the two numeric notions everything
// else in this package and pkg/nipopow is built on.
package consensus

import (
	"math/big"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// Target is a 160-bit difficulty target. A block's hash is valid
// proof-of-work iff int(hash) < int(target) (spec §3/§4.C).
type Target struct {
	value *big.Int
}

// NewTargetFromHex parses a hex-encoded difficulty target.
func NewTargetFromHex(hex string) (Target, error) {
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return Target{}, errInvalidTarget(hex)
	}
	return Target{value: n}, nil
}

// NewTarget wraps a big.Int difficulty target.
func NewTarget(n *big.Int) Target {
	return Target{value: new(big.Int).Set(n)}
}

// Int returns the target's integer value.
func (t Target) Int() *big.Int { return t.value }

// MeetsTarget reports whether a block hash satisfies this target.
func (t Target) MeetsTarget(hash types.Digest) bool {
	return hash.Int().Cmp(t.value) < 0
}

// leadingZeroBits counts the target's own leading zero bits, needed by
// Level below. The target is padded to the digest width the same way a
// hash is, so the comparison in Level is apples-to-apples.
func (t Target) leadingZeroBits() int {
	return types.DigestFromInt(t.value).LeadingZeroBits()
}

// Level computes a mined block's superblock level under the given
// target: the difference between the hash's leading-zero-bit count and
// the target's (spec §4.C). A level-0 block just meets the target; a
// level-i block has i extra leading zero bits.
func Level(hash types.Digest, target Target) int {
	return hash.LeadingZeroBits() - target.leadingZeroBits()
}

type errInvalidTarget string

func (e errInvalidTarget) Error() string {
	return "consensus: invalid difficulty target hex: " + string(e)
}
