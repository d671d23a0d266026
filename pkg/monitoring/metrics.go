package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects mining and proof-verification counters for a demo
// run — there is no peer, mempool-byte, or UTXO-cache surface left to
// measure once networking and a global UTXO set are out of scope.
type Metrics struct {
	mu sync.RWMutex

	blocksMined      uint64
	blockMiningTime  time.Duration
	avgBlockMineTime time.Duration

	spvAccepted     uint64
	spvRejected     uint64
	nipopowAccepted uint64
	nipopowRejected uint64

	lastSuffixProofSize uint64
	lastInfixProofSize  uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordBlockMined records the time spent mining a block.
func (m *Metrics) RecordBlockMined(miningTime time.Duration) {
	n := atomic.AddUint64(&m.blocksMined, 1)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blockMiningTime += miningTime
	m.avgBlockMineTime = m.blockMiningTime / time.Duration(n)
}

// GetBlocksMined returns the total number of blocks mined.
func (m *Metrics) GetBlocksMined() uint64 {
	return atomic.LoadUint64(&m.blocksMined)
}

// GetAvgBlockMiningTime returns the average time spent per mined block.
func (m *Metrics) GetAvgBlockMiningTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.avgBlockMineTime
}

// RecordSPVVerdict tallies an SPV verification outcome.
func (m *Metrics) RecordSPVVerdict(accepted bool) {
	if accepted {
		atomic.AddUint64(&m.spvAccepted, 1)
	} else {
		atomic.AddUint64(&m.spvRejected, 1)
	}
}

// GetSPVAccepted returns the number of accepted SPV proofs.
func (m *Metrics) GetSPVAccepted() uint64 { return atomic.LoadUint64(&m.spvAccepted) }

// GetSPVRejected returns the number of rejected SPV proofs.
func (m *Metrics) GetSPVRejected() uint64 { return atomic.LoadUint64(&m.spvRejected) }

// RecordNiPoPoWVerdict tallies a NiPoPoW verification outcome and the
// size (block count) of the proof involved.
func (m *Metrics) RecordNiPoPoWVerdict(accepted bool, suffixSize, infixSize int) {
	if accepted {
		atomic.AddUint64(&m.nipopowAccepted, 1)
	} else {
		atomic.AddUint64(&m.nipopowRejected, 1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSuffixProofSize = uint64(suffixSize)
	m.lastInfixProofSize = uint64(infixSize)
}

// GetNiPoPoWAccepted returns the number of accepted NiPoPoW proofs.
func (m *Metrics) GetNiPoPoWAccepted() uint64 { return atomic.LoadUint64(&m.nipopowAccepted) }

// GetNiPoPoWRejected returns the number of rejected NiPoPoW proofs.
func (m *Metrics) GetNiPoPoWRejected() uint64 { return atomic.LoadUint64(&m.nipopowRejected) }

// LastProofSizes returns the suffix/infix block counts of the most
// recently verified NiPoPoW proof.
func (m *Metrics) LastProofSizes() (suffix, infix uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSuffixProofSize, m.lastInfixProofSize
}

// Summary returns a metrics snapshot suitable for a demo CLI to print.
func (m *Metrics) Summary() map[string]interface{} {
	suffix, infix := m.LastProofSizes()
	return map[string]interface{}{
		"blocks_mined":        m.GetBlocksMined(),
		"avg_block_mine_time": m.GetAvgBlockMiningTime().String(),
		"spv_accepted":        m.GetSPVAccepted(),
		"spv_rejected":        m.GetSPVRejected(),
		"nipopow_accepted":    m.GetNiPoPoWAccepted(),
		"nipopow_rejected":    m.GetNiPoPoWRejected(),
		"last_suffix_size":    suffix,
		"last_infix_size":     infix,
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics()

// GetGlobalMetrics returns the global metrics instance.
func GetGlobalMetrics() *Metrics {
	return globalMetrics
}
