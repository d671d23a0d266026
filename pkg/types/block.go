package types

// BlockHeader holds everything about a block except its transactions.
// BlockHash is the hash of the header's canonical encoding without the
// Interlink field, followed by the block's transaction ids.
type BlockHeader struct {
	PrevBlockHash Digest
	Height        uint64
	Timestamp     int64
	Nonce         uint64
	MerkleRoot    Digest
	Interlink     []Digest
}

// Block is a complete block: a header plus its ordered transactions.
// BlockHash is unset until the miner finds a winning Nonce; once set, a
// Block is treated as immutable (spec §3/§5 — readers need no locking
// beyond publication ordering).
type Block struct {
	Header BlockHeader
	Txs    []Transaction

	blockHash Digest
	mined     bool
}

// Height returns the block's height (genesis is 0).
func (b *Block) Height() uint64 { return b.Header.Height }

// IsGenesis reports whether this is the chain's first block.
func (b *Block) IsGenesis() bool { return b.Header.Height == 0 }

// SetBlockHash fixes the block hash once proof-of-work succeeds. Only
// the miner calls this (spec §6's find_pow contract).
func (b *Block) SetBlockHash(h Digest) {
	b.blockHash = h
	b.mined = true
}

// BlockHash returns the block's fixed hash. Panics if the block has not
// been mined — an unmined block cannot legally sit in a chain or proof.
func (b *Block) BlockHash() Digest {
	if !b.mined {
		panic("types: Block.BlockHash called before SetBlockHash")
	}
	return b.blockHash
}

// IsMined reports whether the block's hash has been fixed.
func (b *Block) IsMined() bool { return b.mined }

// Interlink returns the block's interlink vector, slot i holding the
// block hash of the most recent ancestor at superblock level >= i, with
// the final slot always the genesis block hash.
func (b *Block) Interlink() []Digest { return b.Header.Interlink }

// ContainsTx reports whether any of the block's transactions has the
// given id, and returns it if so.
func (b *Block) ContainsTx(id Digest) (Transaction, bool) {
	for _, tx := range b.Txs {
		if tx.HasTxID() && tx.TxID() == id {
			return tx, true
		}
	}
	return Transaction{}, false
}
