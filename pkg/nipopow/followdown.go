package nipopow

import "github.com/pouria-shahmiri/pow-lightclients/pkg/types"

// BlockLookup resolves a block hash to the full block, letting
// FollowDown walk interlink pointers without needing the whole chain
// loaded as a slice.
type BlockLookup func(types.Digest) (*types.Block, bool)

// FollowDown descends from a superblock to the block at targetHeight,
// at each step taking the interlink pointer that reaches deepest
// without passing targetHeight — a skiplist descent (nipopow.py's
// follow_down docstring: "hi = superblock, lo = regular block"). It
// falls back to the direct predecessor link when no interlink pointer
// qualifies, which always makes progress since height strictly
// decreases either way.
func FollowDown(hi *types.Block, targetHeight uint64, lookup BlockLookup) ([]*types.Block, error) {
	if hi.Height() < targetHeight {
		return nil, ErrFollowDownFailed
	}

	path := []*types.Block{hi}
	cur := hi

	for cur.Height() > targetHeight {
		next, ok := deepestPointer(cur, targetHeight, lookup)
		if !ok {
			return nil, ErrFollowDownFailed
		}
		path = append(path, next)
		cur = next
	}

	if cur.Height() != targetHeight {
		return nil, ErrFollowDownFailed
	}
	return path, nil
}

// deepestPointer picks, among cur's interlink pointers that don't drop
// below targetHeight, the one closest to it; if none qualify it falls
// back to cur's direct parent.
func deepestPointer(cur *types.Block, targetHeight uint64, lookup BlockLookup) (*types.Block, bool) {
	var best *types.Block
	for _, h := range cur.Interlink() {
		b, ok := lookup(h)
		if !ok || b.Height() < targetHeight {
			continue
		}
		if best == nil || b.Height() < best.Height() {
			best = b
		}
	}
	if best != nil {
		return best, true
	}
	return lookup(cur.Header.PrevBlockHash)
}
