package nipopow

import "errors"

// Sentinel errors returned by proof construction and verification.
var (
	ErrEmptyChain  = errors.New("nipopow: chain is empty")
	ErrNotAnchored = errors.New("nipopow: proof is not anchored at genesis")
	// ErrUnanchoredChain covers both halves of spec's UNANCHORED_CHAIN
	// kind: a consecutive pair in the flattened proof not linked by a
	// direct prev_block or interlink pointer, and a block whose
	// interlink does not terminate in the genesis hash.
	ErrUnanchoredChain = errors.New("nipopow: proof is not anchored: a block is unlinked or its interlink does not end in genesis")
	ErrInvalidPoW      = errors.New("nipopow: proof contains a block whose hash does not meet the target")
	ErrSuffixTooShort  = errors.New("nipopow: suffix proof does not have exactly k blocks")
	// ErrSuperchainMismatch is returned when a proof's top-level prefix
	// does not equal the superchain the verifier was initialized with
	// from an earlier trusted session.
	ErrSuperchainMismatch = errors.New("nipopow: proof's top-level superchain does not match the stored superchain")
	ErrNotGood            = errors.New("nipopow: proof does not contain m blocks at its claimed level")
	ErrTxNotFound         = errors.New("nipopow: transaction not found in any block of the infix proof")
	ErrFollowDownFailed   = errors.New("nipopow: could not connect superblock down to target block")
)
