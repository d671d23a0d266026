package consensus

import (
	"testing"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

func mustMinedBlock(t *testing.T, height uint64, prev types.Digest, hash byte) *types.Block {
	t.Helper()
	b := &types.Block{Header: types.BlockHeader{Height: height, PrevBlockHash: prev}}
	var h types.Digest
	h[0] = hash
	b.SetBlockHash(h)
	return b
}

func TestValidateAppendAcceptsValidChild(t *testing.T) {
	target, err := NewTargetFromHex("ffffffffffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatal(err)
	}
	rules := NewChainRules(target)

	parent := mustMinedBlock(t, 0, types.Digest{}, 0x01)
	child := mustMinedBlock(t, 1, parent.BlockHash(), 0x02)

	if err := rules.ValidateAppend(parent, child); err != nil {
		t.Errorf("expected a valid child to be accepted, got %v", err)
	}
}

func TestValidateAppendRejectsHeightSkip(t *testing.T) {
	target, _ := NewTargetFromHex("ffffffffffffffffffffffffffffffffffffffff")
	rules := NewChainRules(target)

	parent := mustMinedBlock(t, 0, types.Digest{}, 0x01)
	child := mustMinedBlock(t, 2, parent.BlockHash(), 0x02)

	if err := rules.ValidateAppend(parent, child); err == nil {
		t.Errorf("expected an error for a non-monotonic height")
	}
}

func TestValidateAppendRejectsPrevLinkMismatch(t *testing.T) {
	target, _ := NewTargetFromHex("ffffffffffffffffffffffffffffffffffffffff")
	rules := NewChainRules(target)

	parent := mustMinedBlock(t, 0, types.Digest{}, 0x01)
	child := mustMinedBlock(t, 1, types.Digest{0xff}, 0x02)

	if err := rules.ValidateAppend(parent, child); err == nil {
		t.Errorf("expected an error for a prev_block hash that doesn't match the parent")
	}
}

func TestValidateAppendRejectsInsufficientPoW(t *testing.T) {
	target, _ := NewTargetFromHex("0000000000000000000000000000000000000001")
	rules := NewChainRules(target)

	parent := mustMinedBlock(t, 0, types.Digest{}, 0x00)
	child := mustMinedBlock(t, 1, parent.BlockHash(), 0xff)

	if err := rules.ValidateAppend(parent, child); err == nil {
		t.Errorf("expected an error for a hash that does not meet the target")
	}
}

func TestValidateInterlinkTail(t *testing.T) {
	genesis := mustMinedBlock(t, 0, types.Digest{}, 0x01)

	good := mustMinedBlock(t, 1, genesis.BlockHash(), 0x02)
	good.Header.Interlink = []types.Digest{genesis.BlockHash()}
	if err := ValidateInterlinkTail(good, genesis); err != nil {
		t.Errorf("expected a well-formed interlink to pass, got %v", err)
	}

	bad := mustMinedBlock(t, 1, genesis.BlockHash(), 0x03)
	bad.Header.Interlink = []types.Digest{{0xaa}}
	if err := ValidateInterlinkTail(bad, genesis); err == nil {
		t.Errorf("expected an error when the interlink tail is not genesis")
	}

	empty := mustMinedBlock(t, 1, genesis.BlockHash(), 0x04)
	if err := ValidateInterlinkTail(empty, genesis); err == nil {
		t.Errorf("expected an error for an empty interlink")
	}
}
