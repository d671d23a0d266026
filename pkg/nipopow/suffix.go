package nipopow

import (
	"sort"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// SuffixProof is the chain snapshot a full node hands a light client:
// genesis, the literal last-k blocks (too young to trust by level
// alone), and a handful of superblock chains collected level by level
// on the way down (nipopow.py's createSuffixProof).
type SuffixProof struct {
	Genesis *types.Block
	Levels  [][]*types.Block // highest level collected first
	Suffix  []*types.Block   // last k blocks of the full chain, in height order
}

// SuffixOf returns the trailing k blocks of chain (or all of it, if
// shorter than k).
func SuffixOf(chain []*types.Block, k int) []*types.Block {
	if len(chain) <= k {
		return chain
	}
	return chain[len(chain)-k:]
}

// BuildSuffixProof starts at the same "top" level find_top_chain
// would pick (the highest level with at least m blocks in the stable,
// suffix-excluded chain), takes that level's full superchain as the
// proof's top-level prefix, then walks downward collecting each lower
// level's trailing m blocks, before appending the literal k-block
// suffix (spec §9's suffix-proof construction, steps 1-4). Starting
// at the good level rather than the chain's absolute highest level is
// what lets a verifier's stored top superchain (from an earlier
// GetTopChain call against the same stable prefix) line up exactly
// with proof.Levels[0] for the identity check in VerifySuffix.
func BuildSuffixProof(chain []*types.Block, target consensus.Target, k, m int) (*SuffixProof, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}

	proof := &SuffixProof{
		Genesis: chain[0],
		Suffix:  SuffixOf(chain, k),
	}

	top, _ := FindTopChain(chain, k, m, target)
	stable := stableWindow(chain, k)

	for level := top; level >= 0; level-- {
		super := GetSuperchain(stable, level, target)
		if level < top && len(super) > m {
			super = super[len(super)-m:]
		}
		if len(super) > 0 {
			proof.Levels = append(proof.Levels, super)
		}
	}

	return proof, nil
}

// VerifySuffix checks a suffix proof the way spec §4.D's verifier
// does, against the three checks it names in order: the suffix has
// exactly k blocks (length check); the proof's top-level prefix
// equals storedSuperchain, the superchain the verifier was pinned to
// in an earlier trusted session (identity check); and the flattened
// proof is anchored — every block meets the difficulty target,
// consecutive blocks are linked (directly or via an interlink
// pointer), and every block's interlink ends in genesis. A nil
// storedSuperchain skips the identity check, for the bootstrap proof a
// client has nothing yet to compare against.
func VerifySuffix(proof *SuffixProof, genesisHash types.Digest, target consensus.Target, k, m int, storedSuperchain []*types.Block) error {
	if proof == nil || proof.Genesis == nil {
		return ErrEmptyChain
	}
	if proof.Genesis.BlockHash() != genesisHash || !proof.Genesis.IsGenesis() {
		return ErrNotAnchored
	}
	if len(proof.Suffix) != k {
		return ErrSuffixTooShort
	}
	if storedSuperchain != nil {
		top := []*types.Block{}
		if len(proof.Levels) > 0 {
			top = proof.Levels[0]
		}
		if !sameSuperchain(top, storedSuperchain) {
			return ErrSuperchainMismatch
		}
	}

	all := dedupeByHash(append([]*types.Block{proof.Genesis}, append(flattenLevels(proof.Levels), proof.Suffix...)...))
	sort.Slice(all, func(i, j int) bool { return all[i].Height() < all[j].Height() })

	for _, b := range all {
		if !target.MeetsTarget(b.BlockHash()) {
			return ErrInvalidPoW
		}
		if b.IsGenesis() {
			continue
		}
		if err := consensus.ValidateInterlinkTail(b, proof.Genesis); err != nil {
			return ErrUnanchoredChain
		}
	}
	for i := 1; i < len(all); i++ {
		if !linked(all[i-1], all[i]) {
			return ErrUnanchoredChain
		}
	}

	if len(proof.Levels) > 0 {
		good := false
		for _, lvl := range proof.Levels {
			if len(lvl) >= m {
				good = true
				break
			}
		}
		if !good {
			return ErrNotGood
		}
	}

	return nil
}

// sameSuperchain reports whether two superchains contain exactly the
// same blocks, identified by hash, irrespective of order.
func sameSuperchain(a, b []*types.Block) bool {
	if len(a) != len(b) {
		return false
	}
	want := make(map[types.Digest]struct{}, len(b))
	for _, blk := range b {
		want[blk.BlockHash()] = struct{}{}
	}
	for _, blk := range a {
		if _, ok := want[blk.BlockHash()]; !ok {
			return false
		}
	}
	return true
}

// linked reports whether cur legally follows prev in a proof: either
// directly (cur.prev_block == prev.hash) or via one of cur's interlink
// pointers skipping back to prev (the superblock-chain case).
func linked(prev, cur *types.Block) bool {
	if cur.Header.PrevBlockHash == prev.BlockHash() {
		return true
	}
	for _, h := range cur.Interlink() {
		if h == prev.BlockHash() {
			return true
		}
	}
	return false
}

func flattenLevels(levels [][]*types.Block) []*types.Block {
	var out []*types.Block
	for _, lvl := range levels {
		out = append(out, lvl...)
	}
	return out
}

func dedupeByHash(blocks []*types.Block) []*types.Block {
	seen := make(map[types.Digest]bool, len(blocks))
	out := make([]*types.Block, 0, len(blocks))
	for _, b := range blocks {
		h := b.BlockHash()
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, b)
	}
	return out
}
