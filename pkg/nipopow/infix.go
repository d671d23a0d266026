package nipopow

import (
	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// InfixProof proves a single transaction's inclusion in a block that
// lies anywhere in the chain except the unstable k-suffix: a suffix
// proof establishing trust in the chain, a follow_down path connecting
// one of the suffix proof's superblocks down to the containing block,
// and that block's ordinary Merkle inclusion path for the transaction
// (nipopow.py's createInfixProof docstring).
type InfixProof struct {
	Suffix     *SuffixProof
	Path       []*types.Block
	Block      *types.Block
	MerklePath []types.Digest
	TxID       types.Digest
}

// BuildInfixProof locates the block containing txID, rejects it if it
// falls within the unstable k-suffix, and assembles a suffix proof
// plus a follow_down descent from the shallowest suffix-proof
// superblock that is not older than the target block, plus the
// target block's own Merkle path for txID.
func BuildInfixProof(chain []*types.Block, target consensus.Target, k, m int, txID types.Digest, lookup BlockLookup) (*InfixProof, error) {
	block, found := findContaining(chain, txID)
	if !found {
		return nil, ErrTxNotFound
	}

	suffix, err := BuildSuffixProof(chain, target, k, m)
	if err != nil {
		return nil, err
	}
	if len(suffix.Suffix) > 0 && block.Height() >= suffix.Suffix[0].Height() {
		return nil, ErrNotGood // target block lies in the unstable suffix
	}

	entry := shallowestAtLeast(flattenLevels(suffix.Levels), block.Height())
	if entry == nil {
		entry = suffix.Genesis
	}

	path, err := FollowDown(entry, block.Height(), lookup)
	if err != nil {
		return nil, err
	}

	merklePath, err := merklePathFor(block, txID)
	if err != nil {
		return nil, err
	}

	return &InfixProof{
		Suffix:     suffix,
		Path:       path,
		Block:      block,
		MerklePath: merklePath,
		TxID:       txID,
	}, nil
}

// VerifyInfix checks the suffix portion exactly as VerifySuffix does,
// then separately validates that the infix path — which now carries
// predicate_block and the follow_down bridge down to it — is itself
// anchored to genesis by the same interlink-link rule (spec §4.D's
// infix verification).
func VerifyInfix(proof *InfixProof, genesisHash types.Digest, target consensus.Target, k, m int, storedSuperchain []*types.Block) error {
	if proof == nil || proof.Suffix == nil || proof.Block == nil {
		return ErrEmptyChain
	}
	if err := VerifySuffix(proof.Suffix, genesisHash, target, k, m, storedSuperchain); err != nil {
		return err
	}
	if len(proof.Suffix.Suffix) > 0 && proof.Block.Height() >= proof.Suffix.Suffix[0].Height() {
		return ErrNotGood
	}
	if len(proof.Path) == 0 || proof.Path[len(proof.Path)-1].BlockHash() != proof.Block.BlockHash() {
		return ErrFollowDownFailed
	}
	for i := 1; i < len(proof.Path); i++ {
		if !linked(proof.Path[i], proof.Path[i-1]) {
			return ErrUnanchoredChain
		}
		if err := consensus.ValidateInterlinkTail(proof.Path[i], proof.Suffix.Genesis); err != nil {
			return ErrUnanchoredChain
		}
	}

	leaf, err := txLeaf(proof.Block, proof.TxID)
	if err != nil {
		return err
	}
	if !crypto.VerifyPath(leaf, proof.MerklePath, proof.Block.Header.MerkleRoot) {
		return ErrTxNotFound
	}

	return nil
}

func findContaining(chain []*types.Block, txID types.Digest) (*types.Block, bool) {
	for _, b := range chain {
		if _, ok := b.ContainsTx(txID); ok {
			return b, true
		}
	}
	return nil, false
}

// shallowestAtLeast picks the block with the smallest height among
// those at or above minHeight, minimizing the follow_down descent.
func shallowestAtLeast(blocks []*types.Block, minHeight uint64) *types.Block {
	var best *types.Block
	for _, b := range blocks {
		if b.Height() < minHeight {
			continue
		}
		if best == nil || b.Height() < best.Height() {
			best = b
		}
	}
	return best
}

func merklePathFor(block *types.Block, txID types.Digest) ([]types.Digest, error) {
	leaves := make([][]byte, len(block.Txs))
	for i := range block.Txs {
		id := block.Txs[i].TxID()
		leaves[i] = append([]byte(nil), id[:]...)
	}
	tree := crypto.NewTree(leaves)
	path, ok := tree.Path(txIDBytes(txID))
	if !ok {
		return nil, ErrTxNotFound
	}
	return path, nil
}

func txLeaf(block *types.Block, txID types.Digest) ([]byte, error) {
	if _, ok := block.ContainsTx(txID); !ok {
		return nil, ErrTxNotFound
	}
	return txIDBytes(txID), nil
}

func txIDBytes(id types.Digest) []byte {
	return append([]byte(nil), id[:]...)
}
