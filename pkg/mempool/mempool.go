// A holding area for transactions that have not yet been mined into a
// block. Real fee-market ordering is out of scope for this toy model —
// ordering is strictly FIFO (original_source/src/blockchain_structs.py's
// Mempool docstring: "Mempool ordering would normally be based on tx
// fees but it will just be FIFO").
package mempool

import (
	"sync"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// Mempool is a FIFO queue of unmined transactions.
type Mempool struct {
	mu   sync.Mutex
	pool []types.Transaction
}

// New returns an empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Add appends a transaction to the back of the pool.
func (m *Mempool) Add(tx types.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pool = append(m.pool, tx)
}

// Gather removes and returns up to n transactions from the front of the
// pool, in arrival order. Passing n <= 0 drains the whole pool.
func (m *Mempool) Gather(n int) []types.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || n > len(m.pool) {
		n = len(m.pool)
	}
	gathered := make([]types.Transaction, n)
	copy(gathered, m.pool[:n])
	m.pool = m.pool[n:]
	return gathered
}

// Len reports the number of transactions currently waiting.
func (m *Mempool) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pool)
}

// Remove drops any pooled transactions whose id appears in mined,
// matching the blockchain_structs.py contract of clearing a block's
// contents out of the pool once it has been committed.
func (m *Mempool) Remove(mined []types.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	minedIDs := make(map[types.Digest]struct{}, len(mined))
	for _, tx := range mined {
		if tx.HasTxID() {
			minedIDs[tx.TxID()] = struct{}{}
		}
	}

	remaining := m.pool[:0]
	for _, tx := range m.pool {
		if tx.HasTxID() {
			if _, done := minedIDs[tx.TxID()]; done {
				continue
			}
		}
		remaining = append(remaining, tx)
	}
	m.pool = remaining
}
