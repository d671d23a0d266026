package wallet

import (
	"fmt"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/keys"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/serialization"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// CreateTransaction spends the wallet's own UTXOs to pay amount to
// toPubKey, returning the remainder (if any) to one of the wallet's own
// keys; which one is not defined when the wallet holds several. Spent
// UTXOs are removed from the wallet's holdings.
func (w *Wallet) CreateTransaction(toPubKey []byte, amount int64) (*types.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	selected, total, err := w.selectUTXOs(amount)
	if err != nil {
		return nil, err
	}

	tx := &types.Transaction{
		Vin:  selected,
		Vout: []types.UTXO{{Value: amount, PubKey: toPubKey}},
	}

	if change := total - amount; change > 0 {
		changePubKey, ok := w.firstPubKey()
		if !ok {
			return nil, fmt.Errorf("wallet: no address available for change output")
		}
		tx.Vout = append(tx.Vout, types.UTXO{Value: change, PubKey: changePubKey})
	}

	for i := range tx.Vin {
		if err := w.signInput(&tx.Vin[i]); err != nil {
			return nil, fmt.Errorf("wallet: signing input %d: %w", i, err)
		}
	}

	// Vout entries never carry their own TxID/Index: that would be the id
	// of the transaction that is still being built, and embedding it
	// would make a transaction's serialization depend on its own hash. A
	// vout's coordinates are stamped only once its transaction is
	// committed, by types.OutputsOf turning it into a spendable UTXO.
	if _, err := serialization.HashTransaction(tx); err != nil {
		return nil, fmt.Errorf("wallet: hashing transaction: %w", err)
	}

	return tx, nil
}

// selectUTXOs pops wallet-held UTXOs off the front of the holdings list
// until their total value covers amount.
func (w *Wallet) selectUTXOs(amount int64) ([]types.UTXO, int64, error) {
	var selected []types.UTXO
	var total int64

	n := 0
	for _, u := range w.utxos {
		selected = append(selected, u)
		total += u.Value
		n++
		if total >= amount {
			break
		}
	}

	if total < amount {
		return nil, 0, fmt.Errorf("wallet: insufficient funds: have %d, need %d", total, amount)
	}

	w.utxos = w.utxos[n:]
	return selected, total, nil
}

func (w *Wallet) firstPubKey() ([]byte, bool) {
	for _, priv := range w.keys {
		return priv.PublicKey().Bytes(true), true
	}
	return nil, false
}

// signInput signs a spent UTXO's content, proving ownership of the
// locking public key it carries. The signature covers the UTXO with its
// own Signature field cleared, matching the message verifyInput checks
// against.
func (w *Wallet) signInput(u *types.UTXO) error {
	privKey, ok := w.keyForPubKey(u.PubKey)
	if !ok {
		return fmt.Errorf("wallet: no key for input locked to %x", u.PubKey)
	}

	msg, err := signingDigest(u)
	if err != nil {
		return err
	}

	sig, err := privKey.Sign(msg[:])
	if err != nil {
		return err
	}

	u.Signature = sig.Serialize()
	return nil
}

// VerifyInput checks that a spent UTXO's signature was produced by the
// key matching its locking public key.
func VerifyInput(u types.UTXO) (bool, error) {
	sig, err := keys.ParseSignature(u.Signature)
	if err != nil {
		return false, err
	}
	pubKey, err := keys.ParsePublicKey(u.PubKey)
	if err != nil {
		return false, err
	}

	msg, err := signingDigest(&u)
	if err != nil {
		return false, err
	}

	return pubKey.Verify(msg[:], sig), nil
}

// signingDigest hashes a UTXO's canonical encoding with its signature
// field cleared — the message both signInput and VerifyInput agree on.
func signingDigest(u *types.UTXO) (types.Digest, error) {
	unsigned := *u
	unsigned.Signature = nil

	encoded, err := serialization.SerializeUTXO(&unsigned)
	if err != nil {
		return types.Digest{}, err
	}
	return crypto.H(encoded), nil
}
