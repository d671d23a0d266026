package serialization

import (
	"bytes"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// SerializeHeader writes a block header's canonical encoding, in the
// same field order the header struct declares them, EXCLUDING the
// interlink vector (spec §4.C's lifecycle: a block is mined and hashed
// first, and only then is its interlink computed from the parent's —
// the interlink cannot be part of the data that produced the hash it is
// derived from) and excluding the block hash itself (spec §4.C:
// block_hash = H(canonical_encoding(block_without_block_hash_field))).
func SerializeHeader(h *types.BlockHeader) ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(h.PrevBlockHash[:])
	if err := WriteUint64(&buf, h.Height); err != nil {
		return nil, err
	}
	if err := WriteUint64(&buf, uint64(h.Timestamp)); err != nil {
		return nil, err
	}
	if err := WriteUint64(&buf, h.Nonce); err != nil {
		return nil, err
	}
	buf.Write(h.MerkleRoot[:])

	return buf.Bytes(), nil
}

// SerializeBlockForHashing writes the canonical encoding of a full block
// (header plus transaction ids) with the block hash field excluded —
// exactly what gets passed to H to produce BlockHash.
func SerializeBlockForHashing(b *types.Block) ([]byte, error) {
	var buf bytes.Buffer

	headerBytes, err := SerializeHeader(&b.Header)
	if err != nil {
		return nil, err
	}
	buf.Write(headerBytes)

	if err := WriteVarInt(&buf, uint64(len(b.Txs))); err != nil {
		return nil, err
	}
	for i := range b.Txs {
		if !b.Txs[i].HasTxID() {
			if _, err := HashTransaction(&b.Txs[i]); err != nil {
				return nil, err
			}
		}
		id := b.Txs[i].TxID()
		buf.Write(id[:])
	}

	return buf.Bytes(), nil
}

// ComputeMerkleRoot hashes a block's transaction ids into a Merkle tree
// and returns its root (spec §3: merkle_root equals the root of the tree
// over [tx.tx_id for tx in txs]).
func ComputeMerkleRoot(txs []types.Transaction) (types.Digest, error) {
	leaves := make([][]byte, len(txs))
	for i := range txs {
		if !txs[i].HasTxID() {
			if _, err := HashTransaction(&txs[i]); err != nil {
				return types.Digest{}, err
			}
		}
		id := txs[i].TxID()
		leaves[i] = append([]byte(nil), id[:]...)
	}
	tree := crypto.NewTree(leaves)
	return tree.Root(), nil
}
