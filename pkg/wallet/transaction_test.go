package wallet

import (
	"testing"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
)

func fundedWallet(t *testing.T, balance int64) (*Wallet, string) {
	t.Helper()
	w := NewWallet()
	addr, err := w.GenerateAddress()
	if err != nil {
		t.Fatal(err)
	}
	priv, _ := w.GetKey(addr)
	pub := priv.PublicKey().Bytes(true)
	w.AddUTXO(types.UTXO{Value: balance, PubKey: pub, TxID: types.Digest{0x01}, Index: 0})
	return w, addr
}

func TestCreateTransactionSignsInputsVerifiably(t *testing.T) {
	w, _ := fundedWallet(t, 100)

	other := NewWallet()
	payeeAddr, err := other.GenerateAddress()
	if err != nil {
		t.Fatal(err)
	}
	payeePriv, _ := other.GetKey(payeeAddr)
	payeePub := payeePriv.PublicKey().Bytes(true)

	tx, err := w.CreateTransaction(payeePub, 40)
	if err != nil {
		t.Fatal(err)
	}

	if !tx.HasTxID() {
		t.Fatal("CreateTransaction should stamp a tx id before returning")
	}
	if len(tx.Vin) != 1 {
		t.Fatalf("expected exactly one input, got %d", len(tx.Vin))
	}
	if len(tx.Vout) != 2 {
		t.Fatalf("expected a payment output plus a change output, got %d", len(tx.Vout))
	}
	if tx.Vout[0].Value != 40 {
		t.Errorf("expected payment output of 40, got %d", tx.Vout[0].Value)
	}
	if tx.Vout[1].Value != 60 {
		t.Errorf("expected change output of 60, got %d", tx.Vout[1].Value)
	}

	ok, err := VerifyInput(tx.Vin[0])
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("signed input should verify against its own signature")
	}
}

func TestCreateTransactionSpendsUTXOsOutOfWallet(t *testing.T) {
	w, _ := fundedWallet(t, 100)

	if _, err := w.CreateTransaction([]byte("payee"), 40); err != nil {
		t.Fatal(err)
	}
	if w.GetBalance() != 0 {
		t.Errorf("spent UTXOs should be removed from the wallet's holdings, balance left at %d", w.GetBalance())
	}
}

func TestCreateTransactionInsufficientFunds(t *testing.T) {
	w, _ := fundedWallet(t, 10)

	if _, err := w.CreateTransaction([]byte("payee"), 999); err == nil {
		t.Errorf("expected an error when requesting more than the wallet's balance")
	}
}

func TestVerifyInputRejectsTamperedValue(t *testing.T) {
	w, _ := fundedWallet(t, 100)

	other := NewWallet()
	payeeAddr, err := other.GenerateAddress()
	if err != nil {
		t.Fatal(err)
	}
	payeePriv, _ := other.GetKey(payeeAddr)
	payeePub := payeePriv.PublicKey().Bytes(true)

	tx, err := w.CreateTransaction(payeePub, 40)
	if err != nil {
		t.Fatal(err)
	}

	tampered := tx.Vin[0]
	tampered.Value += 1

	ok, err := VerifyInput(tampered)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("a tampered input value should invalidate the signature")
	}
}
