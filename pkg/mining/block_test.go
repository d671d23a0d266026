package mining

import (
	"testing"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/serialization"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

func TestBuildBlockComputesMerkleRootOverTemplateTxs(t *testing.T) {
	coinbase := CreateCoinbase(50, []byte("miner"))
	if _, err := serialization.HashTransaction(&coinbase); err != nil {
		t.Fatal(err)
	}

	template := &BlockTemplate{
		PrevBlockHash: types.Digest{0x01},
		Height:        7,
		Timestamp:     1234,
		Txs:           []types.Transaction{coinbase},
	}

	block, err := BuildBlock(template)
	if err != nil {
		t.Fatal(err)
	}

	wantRoot, err := serialization.ComputeMerkleRoot(template.Txs)
	if err != nil {
		t.Fatal(err)
	}
	if block.Header.MerkleRoot != wantRoot {
		t.Errorf("block's merkle root does not match the template's transactions")
	}
	if block.Header.PrevBlockHash != template.PrevBlockHash {
		t.Errorf("block did not carry over the template's prev block hash")
	}
	if block.Header.Height != template.Height {
		t.Errorf("block did not carry over the template's height")
	}
}
