package serialization

import (
	"testing"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

func TestHashTransactionStampsTxID(t *testing.T) {
	tx := &types.Transaction{
		Vout: []types.UTXO{{Value: 50, PubKey: []byte("miner")}},
	}

	if tx.HasTxID() {
		t.Fatal("a freshly built transaction should not already have a tx id")
	}

	id, err := HashTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}
	if !tx.HasTxID() || tx.TxID() != id {
		t.Errorf("HashTransaction should stamp the returned id onto the transaction")
	}
}

func TestSerializeTransactionIsDeterministic(t *testing.T) {
	tx1 := &types.Transaction{Vout: []types.UTXO{{Value: 10, PubKey: []byte("a")}}}
	tx2 := &types.Transaction{Vout: []types.UTXO{{Value: 10, PubKey: []byte("a")}}}

	b1, err := SerializeTransaction(tx1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := SerializeTransaction(tx2)
	if err != nil {
		t.Fatal(err)
	}

	if string(b1) != string(b2) {
		t.Errorf("two transactions with identical content should serialize identically")
	}
}

func TestSerializeTransactionDoesNotDependOnItsOwnTxID(t *testing.T) {
	tx := &types.Transaction{Vout: []types.UTXO{{Value: 10, PubKey: []byte("a")}}}

	before, err := SerializeTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := HashTransaction(tx); err != nil {
		t.Fatal(err)
	}
	after, err := SerializeTransaction(tx)
	if err != nil {
		t.Fatal(err)
	}

	if string(before) != string(after) {
		t.Errorf("stamping a tx id should not change the transaction's own canonical encoding")
	}
}

func TestSerializeUTXOIncludesSpendCoordinates(t *testing.T) {
	u1 := types.UTXO{Value: 5, PubKey: []byte("k"), TxID: types.Digest{0x01}, Index: 0}
	u2 := u1
	u2.Index = 1

	b1, err := SerializeUTXO(&u1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := SerializeUTXO(&u2)
	if err != nil {
		t.Fatal(err)
	}

	if string(b1) == string(b2) {
		t.Errorf("UTXOs differing only in Index should serialize differently")
	}
}
