// Package blockchain ties mining, consensus, and interlink maintenance
// together into the single canonical chain the full node and both
// light clients operate against (spec's Non-goals rule out forks and
// reorganization, so there is never more than one chain to track).
package blockchain

import (
	"fmt"
	"time"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/config"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/mempool"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/mining"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/nipopow"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/wallet"
)

// Blockchain is the append-only chain of mined blocks, indexed both by
// height and by hash for the lookups pkg/fullnode and pkg/nipopow need.
type Blockchain struct {
	Target   consensus.Target
	Rules    consensus.ChainRules
	Coinbase int64

	byHeight []*types.Block
	byHash   map[types.Digest]*types.Block

	mempool *mempool.Mempool
	miner   *mining.Miner
}

// New creates a blockchain with a freshly mined genesis block.
func New(target consensus.Target, coinbase int64) (*Blockchain, error) {
	bc := &Blockchain{
		Target:   target,
		Rules:    consensus.NewChainRules(target),
		Coinbase: coinbase,
		byHash:   make(map[types.Digest]*types.Block),
		mempool:  mempool.New(),
		miner:    mining.NewMiner(target),
	}

	genesis, err := mining.BuildBlock(&mining.BlockTemplate{
		Height:    0,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("blockchain: building genesis block: %w", err)
	}
	if _, err := bc.miner.MineBlock(genesis); err != nil {
		return nil, fmt.Errorf("blockchain: mining genesis block: %w", err)
	}
	genesis.Header.Interlink = nipopow.GenesisInterlink(genesis.BlockHash())

	bc.byHeight = append(bc.byHeight, genesis)
	bc.byHash[genesis.BlockHash()] = genesis

	return bc, nil
}

// Genesis returns the chain's first block.
func (bc *Blockchain) Genesis() *types.Block { return bc.byHeight[0] }

// Head returns the chain's most recently appended block.
func (bc *Blockchain) Head() *types.Block { return bc.byHeight[len(bc.byHeight)-1] }

// Blocks returns every block in height order. Callers must not mutate
// the returned slice or its blocks.
func (bc *Blockchain) Blocks() []*types.Block { return bc.byHeight }

// BlockByHash looks a block up by its hash.
func (bc *Blockchain) BlockByHash(h types.Digest) (*types.Block, bool) {
	b, ok := bc.byHash[h]
	return b, ok
}

// Mempool returns the chain's FIFO transaction pool, open for callers
// to submit new transactions into before the next block drains it.
func (bc *Blockchain) Mempool() *mempool.Mempool { return bc.mempool }

// AddBlock gathers any pending mempool transactions, pays the fixed
// coinbase reward to minerPubKey, mines a new block, updates its
// interlink from the current head, and appends it.
func (bc *Blockchain) AddBlock(minerPubKey []byte) (*types.Block, error) {
	head := bc.Head()

	gathered := bc.mempool.Gather(0)
	coinbaseTx := mining.CreateCoinbase(bc.Coinbase, minerPubKey)
	txs := append([]types.Transaction{coinbaseTx}, gathered...)

	block, err := mining.BuildBlock(&mining.BlockTemplate{
		PrevBlockHash: head.BlockHash(),
		Height:        head.Height() + 1,
		Timestamp:     time.Now().Unix(),
		Txs:           txs,
	})
	if err != nil {
		return nil, fmt.Errorf("blockchain: building block %d: %w", head.Height()+1, err)
	}

	if _, err := bc.miner.MineBlock(block); err != nil {
		return nil, fmt.Errorf("blockchain: mining block %d: %w", head.Height()+1, err)
	}

	parentLevel := consensus.Level(head.BlockHash(), bc.Target)
	block.Header.Interlink = nipopow.UpdateInterlink(head.Interlink(), parentLevel, head.BlockHash(), bc.Genesis().BlockHash())

	if err := bc.Rules.ValidateAppend(head, block); err != nil {
		return nil, err
	}

	bc.byHeight = append(bc.byHeight, block)
	bc.byHash[block.BlockHash()] = block
	bc.mempool.Remove(gathered)

	return block, nil
}

// Generate bootstraps a blockchain from a config, mining cfg.NumBlocks
// blocks on top of genesis, every one rewarding the same miner address
// generated once in w (original_source/src/spv.py's generate_blockchain
// call).
func Generate(cfg *config.Config, w *wallet.Wallet) (*Blockchain, error) {
	target, err := consensus.NewTargetFromHex(cfg.Difficulty)
	if err != nil {
		return nil, err
	}

	bc, err := New(target, cfg.Coinbase)
	if err != nil {
		return nil, err
	}

	minerAddr, err := w.GenerateAddress()
	if err != nil {
		return nil, fmt.Errorf("blockchain: generating miner address: %w", err)
	}
	minerKey, _ := w.GetKey(minerAddr)
	minerPubKey := minerKey.PublicKey().Bytes(true)

	payeeAddr, err := w.GenerateAddress()
	if err != nil {
		return nil, fmt.Errorf("blockchain: generating payee address: %w", err)
	}
	payeeKey, _ := w.GetKey(payeeAddr)
	payeePubKey := payeeKey.PublicKey().Bytes(true)

	for i := uint64(0); i < cfg.NumBlocks; i++ {
		// Every third block, once the wallet has coinbase change to spend,
		// submit a plain payment so the chain carries more than coinbases
		// (original_source/src/blockchain_structs.py's Transaction model).
		if i > 0 && i%3 == 0 && w.GetBalance() > bc.Coinbase {
			if tx, err := w.CreateTransaction(payeePubKey, bc.Coinbase/2); err == nil {
				bc.Mempool().Add(*tx)
			}
		}

		block, err := bc.AddBlock(minerPubKey)
		if err != nil {
			return nil, fmt.Errorf("blockchain: mining block %d: %w", i+1, err)
		}
		for _, tx := range block.Txs {
			for _, out := range types.OutputsOf(&tx) {
				w.AddUTXO(out)
			}
		}
	}

	return bc, nil
}
