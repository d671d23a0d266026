package blockchain

import (
	"strings"
	"testing"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/config"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/wallet"
)

func easyTarget(t *testing.T) consensus.Target {
	t.Helper()
	target, err := consensus.NewTargetFromHex(strings.Repeat("f", 39) + "e")
	if err != nil {
		t.Fatal(err)
	}
	return target
}

func TestNewMinesAGenesisBlock(t *testing.T) {
	bc, err := New(easyTarget(t), 50)
	if err != nil {
		t.Fatal(err)
	}

	genesis := bc.Genesis()
	if genesis.Height() != 0 {
		t.Errorf("expected genesis height 0, got %d", genesis.Height())
	}
	if bc.Head().BlockHash() != genesis.BlockHash() {
		t.Errorf("a fresh chain's head should be its genesis block")
	}
	if _, ok := bc.BlockByHash(genesis.BlockHash()); !ok {
		t.Errorf("genesis should be indexed by hash")
	}
}

func TestAddBlockExtendsHeightAndInterlink(t *testing.T) {
	bc, err := New(easyTarget(t), 50)
	if err != nil {
		t.Fatal(err)
	}

	block, err := bc.AddBlock([]byte("miner-pubkey"))
	if err != nil {
		t.Fatal(err)
	}

	if block.Height() != 1 {
		t.Errorf("expected height 1, got %d", block.Height())
	}
	if block.Header.PrevBlockHash != bc.Genesis().BlockHash() {
		t.Errorf("new block should point back at genesis")
	}
	if len(block.Interlink()) == 0 {
		t.Errorf("a mined block's interlink should never be empty")
	}
	if bc.Head().BlockHash() != block.BlockHash() {
		t.Errorf("chain head should advance to the newly added block")
	}
	if len(block.Txs) != 1 {
		t.Errorf("expected exactly the coinbase transaction with an empty mempool, got %d", len(block.Txs))
	}
}

func TestAddBlockDrainsMempoolIntoTheBlock(t *testing.T) {
	bc, err := New(easyTarget(t), 50)
	if err != nil {
		t.Fatal(err)
	}

	w := wallet.NewWallet()
	addr, err := w.GenerateAddress()
	if err != nil {
		t.Fatal(err)
	}
	priv, _ := w.GetKey(addr)
	pub := priv.PublicKey().Bytes(true)

	if _, err := bc.AddBlock(pub); err != nil {
		t.Fatal(err)
	}

	bc.Mempool().Add(mockTx(1))
	if bc.Mempool().Len() != 1 {
		t.Fatalf("expected 1 pending transaction, got %d", bc.Mempool().Len())
	}

	next, err := bc.AddBlock(pub)
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Txs) != 2 {
		t.Errorf("expected coinbase plus the pending transaction, got %d", len(next.Txs))
	}
	if bc.Mempool().Len() != 0 {
		t.Errorf("mined transactions should be drained from the mempool")
	}
}

func TestGenerateBootstrapsRequestedBlockCount(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Difficulty = strings.Repeat("f", 39) + "e"
	cfg.NumBlocks = 5

	bc, err := Generate(cfg, wallet.NewWallet())
	if err != nil {
		t.Fatal(err)
	}

	if bc.Head().Height() != cfg.NumBlocks {
		t.Errorf("expected chain head at height %d, got %d", cfg.NumBlocks, bc.Head().Height())
	}
	if len(bc.Blocks()) != int(cfg.NumBlocks)+1 {
		t.Errorf("expected %d blocks including genesis, got %d", cfg.NumBlocks+1, len(bc.Blocks()))
	}
}

func mockTx(salt byte) types.Transaction {
	tx := types.Transaction{Vout: []types.UTXO{{Value: 1, PubKey: []byte{salt}}}}
	tx.SetTxID(types.Digest{salt})
	return tx
}
