// Package nipopow implements the Non-Interactive Proofs of
// Proof-of-Work construction: interlink maintenance, superchain
// extraction, and the suffix/infix proof protocols a light client
// uses to accept a chain snapshot without downloading every block.
package nipopow

import "github.com/pouria-shahmiri/pow-lightclients/pkg/types"

// UpdateInterlink computes the interlink vector a block following
// parent should carry, given the parent's own superblock level and
// hash. Every slot up to and including parentLevel is replaced with
// parent's hash — the just-mined block is now the most recent ancestor
// at all of those levels — and any slot beyond that is carried forward
// unchanged from parent's own interlink.
//
// Genesis is conceptually level-infinity (nipopow.py's Interlink
// docstring: "We give genesis block id = 0, so has level infinity"),
// so it belongs to every level above whatever the chain has reached so
// far. That is realized here by always appending genesisHash as the
// vector's last slot when nothing else already put it there — the
// invariant pkg/consensus.ValidateInterlinkTail checks.
func UpdateInterlink(parentInterlink []types.Digest, parentLevel int, parentHash, genesisHash types.Digest) []types.Digest {
	next := make([]types.Digest, 0, len(parentInterlink)+1)

	for i := 0; i <= parentLevel; i++ {
		next = append(next, parentHash)
	}
	if parentLevel+1 < len(parentInterlink) {
		next = append(next, parentInterlink[parentLevel+1:]...)
	}

	if len(next) == 0 || next[len(next)-1] != genesisHash {
		next = append(next, genesisHash)
	}
	return next
}

// GenesisInterlink is the interlink vector the genesis block itself
// carries: a single slot pointing to itself.
func GenesisInterlink(genesisHash types.Digest) []types.Digest {
	return []types.Digest{genesisHash}
}
