package nipopow

import (
	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// GetSuperchain returns every block of chain mined at exactly the
// given superblock level. (spec's own resolution of the level==i vs
// level>=i ambiguity — see DESIGN.md's "Open questions resolved".)
func GetSuperchain(chain []*types.Block, level int, target consensus.Target) []*types.Block {
	var out []*types.Block
	for _, b := range chain {
		if consensus.Level(b.BlockHash(), target) == level {
			out = append(out, b)
		}
	}
	return out
}

// SuperDist reports how many blocks of chain were mined at each
// superblock level actually reached — a diagnostic for picking m/k
// (spec §6/§7, grounded on nipopow.py's get_super_dist stub).
func SuperDist(chain []*types.Block, target consensus.Target) map[int]int {
	dist := make(map[int]int)
	for _, b := range chain {
		dist[consensus.Level(b.BlockHash(), target)]++
	}
	return dist
}

// maxLevel returns the highest superblock level present in chain.
func maxLevel(chain []*types.Block, target consensus.Target) int {
	max := 0
	for _, b := range chain {
		if lvl := consensus.Level(b.BlockHash(), target); lvl > max {
			max = lvl
		}
	}
	return max
}

// FindTopChain returns the highest superblock level whose superchain,
// once the unstable k-block suffix is excluded, still has at least m
// blocks (spec §4.D's goodness parameter), along with that level's
// actual superchain — the snapshot a NiPoPoW client pins its trust to
// and later checks every proof's top-level prefix against (spec §6/
// §4.D).
func FindTopChain(chain []*types.Block, k, m int, target consensus.Target) (int, []*types.Block) {
	stable := stableWindow(chain, k)

	for level := maxLevel(stable, target); level >= 0; level-- {
		if super := GetSuperchain(stable, level, target); len(super) >= m {
			return level, super
		}
	}
	return 0, GetSuperchain(stable, 0, target)
}

// stableWindow drops the trailing k blocks of chain, the portion spec
// §4.D treats as not-yet-stable.
func stableWindow(chain []*types.Block, k int) []*types.Block {
	if len(chain) <= k {
		return nil
	}
	return chain[:len(chain)-k]
}
