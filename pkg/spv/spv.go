// Package spv implements the Simple Payment Verification light client:
// given a transaction id, ask the full node for its Merkle inclusion
// path and rehash it against a locally stored block header, never
// trusting the full node's own verdict (original_source/src/spv.py's
// SPV.verify_transaction).
package spv

import (
	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/fullnode"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/monitoring"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// Client is an SPV light client: a full-node connection plus the block
// headers it trusts, indexed by height, the way spv.py's SPV keeps only
// self.headers rather than full blocks.
type Client struct {
	fullnode *fullnode.FullNode
	headers  map[uint64]types.Digest
	metrics  *monitoring.Metrics
}

// NewClient builds an SPV client that trusts fn's current chain of
// headers (their Merkle roots, indexed by height) as of construction
// time.
func NewClient(fn *fullnode.FullNode) *Client {
	headers := make(map[uint64]types.Digest, len(fn.Chain.Blocks()))
	for _, b := range fn.Chain.Blocks() {
		headers[b.Height()] = b.Header.MerkleRoot
	}
	return &Client{fullnode: fn, headers: headers, metrics: monitoring.GetGlobalMetrics()}
}

// RefreshHeaders re-syncs the client's stored headers to the full
// node's current chain, picking up any blocks mined since NewClient.
func (c *Client) RefreshHeaders() {
	for _, b := range c.fullnode.Chain.Blocks() {
		c.headers[b.Height()] = b.Header.MerkleRoot
	}
}

// VerifyTransaction asks the full node for txID's inclusion path and
// rehashes it leaf-up, accepting only if the result equals the Merkle
// root of the header stored at the claimed height — the full node's own
// claim about which block txID landed in is never trusted directly.
func (c *Client) VerifyTransaction(txID types.Digest) (bool, error) {
	info, err := c.fullnode.GetPath(txID)
	if err != nil {
		c.metrics.RecordSPVVerdict(false)
		return false, ErrTxNotFound
	}

	root, ok := c.headers[info.Height]
	if !ok {
		c.metrics.RecordSPVVerdict(false)
		return false, ErrUnknownHeader
	}

	leaf := append([]byte(nil), txID[:]...)
	if !crypto.VerifyPath(leaf, info.Path, root) {
		c.metrics.RecordSPVVerdict(false)
		return false, ErrRootMismatch
	}

	c.metrics.RecordSPVVerdict(true)
	return true, nil
}
