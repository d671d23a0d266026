// Package fullnode is the server side of both light-client protocols:
// it holds the canonical blockchain and answers the inclusion-path and
// NiPoPoW proof requests pkg/spv and pkg/nipopow's clients send it
// (original_source/src/fullnode.py's FullNode).
package fullnode

import (
	"fmt"
	"os"
	"time"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/blockchain"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/nipopow"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// FullNode wraps a Blockchain with the query methods light clients need.
type FullNode struct {
	Chain *blockchain.Blockchain
}

// New wraps an already-built blockchain.
func New(chain *blockchain.Blockchain) *FullNode {
	return &FullNode{Chain: chain}
}

// InclusionPath is what GetPath hands back to an SPV client: the height
// of the block a transaction was found in, plus the Merkle sibling path
// proving its inclusion (fullnode.py's get_path return dict).
type InclusionPath struct {
	Height uint64
	Path   []types.Digest
}

// GetPath walks the chain backward from the head looking for a block
// containing txID, and if found returns its height and Merkle inclusion
// path (fullnode.py's get_path, rewritten against an indexed chain
// rather than a prev_block linked list).
func (fn *FullNode) GetPath(txID types.Digest) (*InclusionPath, error) {
	blocks := fn.Chain.Blocks()
	for i := len(blocks) - 1; i >= 0; i-- {
		block := blocks[i]
		if _, ok := block.ContainsTx(txID); !ok {
			continue
		}

		leaves := make([][]byte, len(block.Txs))
		for j := range block.Txs {
			id := block.Txs[j].TxID()
			leaves[j] = append([]byte(nil), id[:]...)
		}
		tree := crypto.NewTree(leaves)
		idBytes := append([]byte(nil), txID[:]...)
		path, ok := tree.Path(idBytes)
		if !ok {
			return nil, fmt.Errorf("fullnode: transaction %s not found in its own containing block's tree", txID)
		}

		return &InclusionPath{Height: block.Height(), Path: path}, nil
	}
	return nil, fmt.Errorf("fullnode: transaction %s not found in chain", txID)
}

// GetNiPoPoWProof answers a NiPoPoW light client's request for proof
// that txID is included in the chain, with k/m fixed by the caller
// (fullnode.py's get_nipopow_proof stub, implemented against
// pkg/nipopow's infix proof construction).
func (fn *FullNode) GetNiPoPoWProof(txID types.Digest, k, m int) (*nipopow.InfixProof, error) {
	return nipopow.BuildInfixProof(fn.Chain.Blocks(), fn.Chain.Target, k, m, txID, fn.Chain.BlockByHash)
}

// GetTopChain returns the highest superblock level a NiPoPoW client
// could pin its trust to, given k/m, along with the actual top-level
// superchain snapshot at that level — what spec §6 calls the client's
// stored headers, and what a later VerifySuffix/VerifyInfix call
// checks each proof's top-level prefix against (nipopow.py's
// get_top_chain stub).
func (fn *FullNode) GetTopChain(k, m int) (int, []*types.Block) {
	return nipopow.FindTopChain(fn.Chain.Blocks(), k, m, fn.Chain.Target)
}

// DumpTransactions writes a flat, human-readable record of every block
// in the chain to path: height, timestamp, nonce, Merkle root, and the
// id of every transaction it carries. This is a debugging aid, not a
// wire format or a KV store — the chain itself lives only in memory.
func (fn *FullNode) DumpTransactions(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fullnode: opening dump file: %w", err)
	}
	defer f.Close()

	for _, block := range fn.Chain.Blocks() {
		ts := time.Unix(block.Header.Timestamp, 0).UTC().Format(time.RFC3339)
		if _, err := fmt.Fprintf(f, "height=%d hash=%s timestamp=%s nonce=%d merkle_root=%s\n",
			block.Height(), block.BlockHash(), ts, block.Header.Nonce, block.Header.MerkleRoot); err != nil {
			return fmt.Errorf("fullnode: writing dump: %w", err)
		}
		for _, tx := range block.Txs {
			if _, err := fmt.Fprintf(f, "  tx=%s\n", tx.TxID()); err != nil {
				return fmt.Errorf("fullnode: writing dump: %w", err)
			}
		}
	}
	return nil
}
