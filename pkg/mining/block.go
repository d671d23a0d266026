package mining

import (
	"fmt"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/serialization"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// BlockTemplate holds everything needed to assemble an unmined block —
// everything but the nonce, which MineBlock searches for.
type BlockTemplate struct {
	PrevBlockHash types.Digest
	Height        uint64
	Timestamp     int64
	Txs           []types.Transaction // coinbase first, then gathered mempool txs
}

// BuildBlock assembles an unmined block from a template: computes the
// Merkle root over the template's transactions and fills in the header
// fields that don't depend on the nonce.
func BuildBlock(template *BlockTemplate) (*types.Block, error) {
	root, err := serialization.ComputeMerkleRoot(template.Txs)
	if err != nil {
		return nil, fmt.Errorf("mining: computing merkle root: %w", err)
	}

	header := types.BlockHeader{
		PrevBlockHash: template.PrevBlockHash,
		Height:        template.Height,
		Timestamp:     template.Timestamp,
		MerkleRoot:    root,
	}

	return &types.Block{Header: header, Txs: template.Txs}, nil
}
