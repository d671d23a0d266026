package mining

import "github.com/pouria-shahmiri/pow-lightclients/pkg/types"

// CreateCoinbase builds the reward transaction that pays a fixed amount
// to the miner. Unlike Bitcoin's coinbase there is no halving schedule
// and no transaction-fee market to collect from (pkg/mempool's FIFO
// ordering has no fee concept) — every block pays the same reward.
func CreateCoinbase(reward int64, minerPubKey []byte) types.Transaction {
	return types.Transaction{
		Vout: []types.UTXO{{Value: reward, PubKey: minerPubKey}},
	}
}
