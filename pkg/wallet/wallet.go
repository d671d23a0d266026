// Package wallet is a toy key/UTXO manager: just enough to produce
// distinct, signable transactions to populate blocks with. It keeps only
// the outputs paid to its own keys; nothing in this repository tracks
// which UTXOs remain unspent across the whole chain.
package wallet

import (
	"sync"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/keys"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// Wallet manages private keys and the outputs they were paid.
type Wallet struct {
	mu    sync.RWMutex
	keys  map[string]*keys.PrivateKey // address -> private key
	utxos []types.UTXO
}

// NewWallet creates a new empty wallet.
func NewWallet() *Wallet {
	return &Wallet{
		keys: make(map[string]*keys.PrivateKey),
	}
}

// GenerateAddress creates a new private key and returns its address.
func (w *Wallet) GenerateAddress() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	privKey, err := keys.GeneratePrivateKey()
	if err != nil {
		return "", err
	}

	address := privKey.PublicKey().P2PKHAddress()
	w.keys[address] = privKey
	return address, nil
}

// GetBalance sums the value of every UTXO the wallet currently holds.
func (w *Wallet) GetBalance() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var balance int64
	for _, u := range w.utxos {
		balance += u.Value
	}
	return balance
}

// AddUTXO records an output as belonging to the wallet if it is locked
// to one of the wallet's own keys.
func (w *Wallet) AddUTXO(u types.UTXO) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.ownsLocked(u.PubKey) {
		return
	}
	w.utxos = append(w.utxos, u)
}

// ownsLocked reports whether pubKey matches a key held by the wallet.
func (w *Wallet) ownsLocked(pubKey []byte) bool {
	for _, priv := range w.keys {
		if string(priv.PublicKey().Bytes(true)) == string(pubKey) {
			return true
		}
	}
	return false
}

// GetKey returns the private key registered under an address.
func (w *Wallet) GetKey(address string) (*keys.PrivateKey, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	key, ok := w.keys[address]
	return key, ok
}

// ListAddresses returns every address the wallet can spend from.
func (w *Wallet) ListAddresses() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	addrs := make([]string, 0, len(w.keys))
	for k := range w.keys {
		addrs = append(addrs, k)
	}
	return addrs
}

// keyForPubKey finds the private key whose public key matches pubKey.
func (w *Wallet) keyForPubKey(pubKey []byte) (*keys.PrivateKey, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, priv := range w.keys {
		if string(priv.PublicKey().Bytes(true)) == string(pubKey) {
			return priv, true
		}
	}
	return nil, false
}
