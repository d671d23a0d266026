package types

// UTXO is an unspent transaction output: a value locked to a public key,
// plus (once spent) the signature proving the spender owns it. The core
// treats these only as payload — the signing/verification machinery
// lives in pkg/keys and pkg/wallet.
type UTXO struct {
	Value     int64  // amount, arbitrary unit
	PubKey    []byte // serialized public key the output is locked to
	TxID      Digest // id of the transaction that created this output ([zero] for a not-yet-committed output)
	Index     int    // index of this output within that transaction's Vout
	Signature []byte // empty until the UTXO is spent as an input
}

// Transaction is identified by the hash of its canonical vin/vout
// encoding. For the core it is an opaque leaf: the only attribute that
// matters to the Merkle tree and to NiPoPoW's infix predicate is TxID.
type Transaction struct {
	Vin  []UTXO
	Vout []UTXO

	txID   Digest
	hasID  bool
}

// SetTxID fixes the transaction's id. Called by whoever computes
// H(canonical_encoding(vin, vout)) — pkg/serialization.HashTransaction,
// which pkg/wallet calls for user transactions and block building calls
// for any transaction (such as the coinbase) that has no id yet.
func (t *Transaction) SetTxID(id Digest) {
	t.txID = id
	t.hasID = true
}

// TxID returns the transaction's id. It panics if SetTxID was never
// called, since an unidentified transaction cannot legally appear in a
// block (every Merkle leaf needs a stable content value).
func (t *Transaction) TxID() Digest {
	if !t.hasID {
		panic("types: Transaction.TxID called before SetTxID")
	}
	return t.txID
}

// HasTxID reports whether the transaction's id has been computed yet.
func (t *Transaction) HasTxID() bool {
	return t.hasID
}

// OutputsOf stamps a committed transaction's Vout entries with the
// coordinates (TxID, Index) a future spender needs to reference them,
// returning them as freestanding spendable UTXOs. t must already have a
// TxID.
func OutputsOf(t *Transaction) []UTXO {
	id := t.TxID()
	outs := make([]UTXO, len(t.Vout))
	for i, u := range t.Vout {
		u.TxID = id
		u.Index = i
		outs[i] = u
	}
	return outs
}
