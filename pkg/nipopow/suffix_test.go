package nipopow

import "testing"

func TestBuildAndVerifySuffixProofRoundTrip(t *testing.T) {
	target := easyTarget(t)
	// A handful of level-0 blocks with one level-2 superblock partway
	// through, enough depth that BuildSuffixProof has real levels to walk.
	levels := []int{0, 0, 1, 0, 2, 0, 1, 0, 0, 0, 0, 0}
	chain := chainAt(t, levels)

	proof, err := BuildSuffixProof(chain, target, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := VerifySuffix(proof, chain[0].BlockHash(), target, 3, 2, nil); err != nil {
		t.Errorf("a freshly built suffix proof should verify, got %v", err)
	}
}

func TestBuildSuffixProofRejectsEmptyChain(t *testing.T) {
	target := easyTarget(t)
	if _, err := BuildSuffixProof(nil, target, 3, 2); err != ErrEmptyChain {
		t.Errorf("expected ErrEmptyChain for an empty chain, got %v", err)
	}
}

func TestVerifySuffixRejectsWrongGenesis(t *testing.T) {
	target := easyTarget(t)
	levels := []int{0, 0, 1, 0, 0, 0}
	chain := chainAt(t, levels)

	proof, err := BuildSuffixProof(chain, target, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	wrongGenesis := levelDigest(0, 0xee)
	if err := VerifySuffix(proof, wrongGenesis, target, 2, 1, nil); err != ErrNotAnchored {
		t.Errorf("expected ErrNotAnchored for a mismatched genesis, got %v", err)
	}
}

func TestVerifySuffixRejectsTamperedSuffixLength(t *testing.T) {
	target := easyTarget(t)
	levels := []int{0, 0, 1, 0, 0, 0}
	chain := chainAt(t, levels)

	proof, err := BuildSuffixProof(chain, target, 2, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Withhold one block of the literal k-suffix — the length check
	// must catch a suffix that is no longer exactly k blocks.
	proof.Suffix = proof.Suffix[:len(proof.Suffix)-1]

	if err := VerifySuffix(proof, chain[0].BlockHash(), target, 2, 1, nil); err != ErrSuffixTooShort {
		t.Errorf("expected ErrSuffixTooShort for a truncated suffix, got %v", err)
	}
}

func TestVerifySuffixAcceptsMatchingStoredSuperchain(t *testing.T) {
	target := easyTarget(t)
	levels := []int{0, 0, 1, 0, 2, 0, 1, 0, 0, 0, 0, 0}
	chain := chainAt(t, levels)

	_, stored := FindTopChain(chain, 3, 2, target)

	proof, err := BuildSuffixProof(chain, target, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := VerifySuffix(proof, chain[0].BlockHash(), target, 3, 2, stored); err != nil {
		t.Errorf("a proof whose top level was pinned via GetTopChain against the same chain should still verify, got %v", err)
	}
}

func TestVerifySuffixRejectsSuperchainMismatch(t *testing.T) {
	target := easyTarget(t)
	levels := []int{0, 0, 1, 0, 2, 0, 1, 0, 0, 0, 0, 0}
	chain := chainAt(t, levels)

	proof, err := BuildSuffixProof(chain, target, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	// A superchain pinned from an entirely different chain can never
	// equal this proof's top-level prefix.
	otherChain := chainAt(t, []int{0, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	_, staleSuperchain := FindTopChain(otherChain, 3, 2, target)

	if err := VerifySuffix(proof, chain[0].BlockHash(), target, 3, 2, staleSuperchain); err != ErrSuperchainMismatch {
		t.Errorf("expected ErrSuperchainMismatch for a proof whose top prefix differs from the stored superchain, got %v", err)
	}
}

func TestVerifySuffixRejectsMutatedInterlink(t *testing.T) {
	// Spec scenario S6: take a valid suffix proof, flip one bit in one
	// block's interlink entry, and expect rejection on anchoring.
	target := easyTarget(t)
	levels := []int{0, 0, 1, 0, 2, 0, 1, 0, 0, 0, 0, 0}
	chain := chainAt(t, levels)

	proof, err := BuildSuffixProof(chain, target, 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	victim := proof.Suffix[len(proof.Suffix)-1]
	tail := len(victim.Header.Interlink) - 1
	if tail < 0 {
		t.Fatal("expected the mutated block to carry a non-empty interlink")
	}
	victim.Header.Interlink[tail][0] ^= 0x01

	if err := VerifySuffix(proof, chain[0].BlockHash(), target, 3, 2, nil); err != ErrUnanchoredChain {
		t.Errorf("expected ErrUnanchoredChain for a mutated interlink entry, got %v", err)
	}
}

func TestLinkedAcceptsDirectAndInterlinkPointers(t *testing.T) {
	chain := chainAt(t, []int{5, 0, 1, 0})

	if !linked(chain[0], chain[1]) {
		t.Errorf("expected a direct prev_block link to be recognized")
	}
	if !linked(chain[0], chain[3]) {
		t.Errorf("expected an interlink pointer back to genesis to be recognized")
	}
	if linked(chain[1], chain[3]) {
		t.Errorf("non-adjacent blocks with no interlink pointer between them should not be reported as linked")
	}
}

func TestSuffixOfShorterThanK(t *testing.T) {
	target := easyTarget(t)
	chain := chainAt(t, []int{0, 0})

	suffix := SuffixOf(chain, 10)
	if len(suffix) != len(chain) {
		t.Errorf("SuffixOf should return the whole chain when it's shorter than k")
	}
	_ = target
}
