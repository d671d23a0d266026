package mining

import (
	"fmt"
	"math"
	"time"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/consensus"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/monitoring"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/serialization"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// Miner performs proof-of-work by brute-forcing a block's nonce.
type Miner struct {
	target consensus.Target
	log    *monitoring.Logger
}

// NewMiner creates a miner that mines against a fixed difficulty target.
func NewMiner(target consensus.Target) *Miner {
	return &Miner{target: target, log: monitoring.NewLogger(monitoring.INFO)}
}

// MineBlock finds a nonce for block such that its hash meets the
// miner's target, then fixes the block's hash. The block's header must
// already hold everything except Nonce and Interlink — the caller (the
// chain, which alone knows the parent's level and interlink) fills in
// Interlink once MineBlock returns.
func (m *Miner) MineBlock(block *types.Block) (types.Digest, error) {
	start := time.Now()
	var attempts uint64

	for nonce := uint64(0); nonce < math.MaxUint64; nonce++ {
		block.Header.Nonce = nonce
		attempts++

		encoded, err := serialization.SerializeBlockForHashing(block)
		if err != nil {
			return types.Digest{}, fmt.Errorf("mining: serializing block: %w", err)
		}
		hash := crypto.HashBlock(encoded)

		if m.target.MeetsTarget(hash) {
			block.SetBlockHash(hash)
			m.log.WithFields(map[string]interface{}{
				"height":   block.Height(),
				"nonce":    nonce,
				"attempts": attempts,
				"elapsed":  time.Since(start),
			}).Info("mined block")
			return hash, nil
		}

		if attempts%200000 == 0 {
			m.log.Debugf("mining height %d: %d attempts so far", block.Height(), attempts)
		}
	}

	return types.Digest{}, fmt.Errorf("mining: nonce space exhausted at height %d", block.Height())
}
