package serialization

import (
	"bytes"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/crypto"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

// SerializeUTXO writes a UTXO's canonical encoding: value, public key,
// originating tx id/index, and (if present) signature, always in this
// field order so the same bytes are produced by every caller.
func SerializeUTXO(u *types.UTXO) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteUint64(&buf, uint64(u.Value)); err != nil {
		return nil, err
	}
	if err := WriteBytes(&buf, u.PubKey); err != nil {
		return nil, err
	}
	buf.Write(u.TxID[:])
	if err := WriteUint32(&buf, uint32(u.Index)); err != nil {
		return nil, err
	}
	if err := WriteBytes(&buf, u.Signature); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeTransaction writes a transaction's canonical encoding:
// vin count + each vin, then vout count + each vout. This is exactly
// what spec §3 means by tx_id = H(canonical_encoding(vin, vout)) — the
// txid itself never enters the encoding.
func SerializeTransaction(tx *types.Transaction) ([]byte, error) {
	var buf bytes.Buffer

	if err := WriteVarInt(&buf, uint64(len(tx.Vin))); err != nil {
		return nil, err
	}
	for i := range tx.Vin {
		b, err := SerializeUTXO(&tx.Vin[i])
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	if err := WriteVarInt(&buf, uint64(len(tx.Vout))); err != nil {
		return nil, err
	}
	for i := range tx.Vout {
		b, err := SerializeUTXO(&tx.Vout[i])
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	return buf.Bytes(), nil
}

// HashTransaction computes tx_id from a transaction's canonical encoding
// and stamps it on the transaction.
func HashTransaction(tx *types.Transaction) (types.Digest, error) {
	encoded, err := SerializeTransaction(tx)
	if err != nil {
		return types.Digest{}, err
	}
	id := crypto.HashTransaction(encoded)
	tx.SetTxID(id)
	return id, nil
}
