package consensus

import (
	"fmt"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// ChainRules bundles the handful of invariants spec §3 places on every
// canonical chain. Unlike the teacher's BIP-activation-height table,
// nothing here is network-specific — there is exactly one canonical
// chain per spec's Non-goals (no forks, no reorg).
type ChainRules struct {
	Target Target
}

// NewChainRules builds a ChainRules for a fixed difficulty target.
func NewChainRules(target Target) ChainRules {
	return ChainRules{Target: target}
}

// ValidateAppend checks that child may legally follow parent in a
// canonical chain: height is strictly monotonic, child.prev_block
// matches parent's hash, and child's proof-of-work meets the target.
func (r ChainRules) ValidateAppend(parent, child *types.Block) error {
	if child.Header.Height != parent.Header.Height+1 {
		return fmt.Errorf("consensus: height %d does not follow parent height %d", child.Header.Height, parent.Header.Height)
	}
	if child.Header.PrevBlockHash != parent.BlockHash() {
		return fmt.Errorf("consensus: prev_block %s does not match parent hash %s", child.Header.PrevBlockHash, parent.BlockHash())
	}
	if !r.Target.MeetsTarget(child.BlockHash()) {
		return fmt.Errorf("consensus: block hash %s does not meet difficulty target", child.BlockHash())
	}
	return nil
}

// ValidateInterlinkTail checks that a block's interlink vector ends in
// the genesis block hash (spec §3's interlink invariant, tested
// directly by spec §8's property 5).
func ValidateInterlinkTail(block, genesis *types.Block) error {
	link := block.Interlink()
	if len(link) == 0 {
		return fmt.Errorf("consensus: block %s has an empty interlink", block.BlockHash())
	}
	if link[len(link)-1] != genesis.BlockHash() {
		return fmt.Errorf("consensus: block %s interlink tail is not genesis", block.BlockHash())
	}
	return nil
}
