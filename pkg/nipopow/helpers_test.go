package nipopow

import (
	"math/big"
	"testing"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// easyTarget meets any digest, and has zero leading zero bits of its
// own, so consensus.Level(hash, easyTarget) == hash.LeadingZeroBits() —
// letting tests pick a block's level by constructing its hash directly
// instead of mining.
func easyTarget(t *testing.T) consensus.Target {
	t.Helper()
	target, err := consensus.NewTargetFromHex("ffffffffffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatal(err)
	}
	return target
}

// levelDigest returns a digest with exactly `level` leading zero bits.
func levelDigest(level int, salt byte) types.Digest {
	n := new(big.Int).Lsh(big.NewInt(1), uint(types.DigestSize*8-level-1))
	d := types.DigestFromInt(n)
	d[types.DigestSize-1] = salt
	return d
}

// chainAt builds a linear chain of `n` blocks (including genesis at
// height 0) whose hashes are levelDigest(levels[i], byte(i)), with
// interlinks maintained via UpdateInterlink and heights/prev links
// threaded correctly.
func chainAt(t *testing.T, levels []int) []*types.Block {
	t.Helper()
	target := easyTarget(t)

	genesis := &types.Block{Header: types.BlockHeader{Height: 0}}
	genesis.SetBlockHash(levelDigest(levels[0], 0))
	genesis.Header.Interlink = GenesisInterlink(genesis.BlockHash())

	chain := []*types.Block{genesis}
	for i := 1; i < len(levels); i++ {
		parent := chain[i-1]
		b := &types.Block{Header: types.BlockHeader{
			Height:        uint64(i),
			PrevBlockHash: parent.BlockHash(),
		}}
		b.SetBlockHash(levelDigest(levels[i], byte(i)))
		parentLevel := consensus.Level(parent.BlockHash(), target)
		b.Header.Interlink = UpdateInterlink(parent.Interlink(), parentLevel, parent.BlockHash(), genesis.BlockHash())
		chain = append(chain, b)
	}
	return chain
}
