package wallet_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/wallet"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	pkHexKey    = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	otherHexKey = "8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0"
)

func Test_SignVerify(t *testing.T) {
	t.Log("Given the need to sign transfers with a wallet.")
	{
		w, err := wallet.FromHex(pkHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the key.", success)

		other, err := wallet.FromHex(otherHexKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the other key: %v", failed, err)
		}

		if !w.Account().IsAccountID() {
			t.Fatalf("\t%s\tShould derive a proper account id, got %s.", failed, w.Account())
		}
		t.Logf("\t%s\tShould derive a proper account id.", success)

		sig, err := w.Sign(w.Account(), other.Account(), 10)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign: %v", failed, err)
		}

		tx := database.NewTransfer(w.Account(), other.Account(), sig, 10)
		if !wallet.Verify(tx) {
			t.Fatalf("\t%s\tShould verify a transfer signed by the sender.", failed)
		}
		t.Logf("\t%s\tShould verify a transfer signed by the sender.", success)

		tampered := database.NewTransfer(w.Account(), other.Account(), sig, 11)
		if wallet.Verify(tampered) {
			t.Fatalf("\t%s\tShould not verify a transfer with a changed amount.", failed)
		}
		t.Logf("\t%s\tShould not verify a transfer with a changed amount.", success)

		if _, err := w.Sign(other.Account(), w.Account(), 10); !errors.Is(err, wallet.ErrNotOwner) {
			t.Fatalf("\t%s\tShould refuse to sign for another account, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould refuse to sign for another account.", success)

		signed, err := w.SignTx(other.Account(), 5)
		if err != nil || !wallet.Verify(signed) {
			t.Fatalf("\t%s\tShould be able to build a signed transfer: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to build a signed transfer.", success)
	}
}

func Test_SaveLoad(t *testing.T) {
	t.Log("Given the need to keep a wallet on disk.")
	{
		w, err := wallet.Generate()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a wallet: %v", failed, err)
		}

		path := filepath.Join(t.TempDir(), "accounts", "miner.ecdsa")
		if err := w.Save(path); err != nil {
			t.Fatalf("\t%s\tShould be able to save the wallet: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to save the wallet.", success)

		loaded, err := wallet.Load(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the wallet: %v", failed, err)
		}

		if loaded.Account() != w.Account() {
			t.Fatalf("\t%s\tShould get back the same account, got %s exp %s.", failed, loaded.Account(), w.Account())
		}
		t.Logf("\t%s\tShould get back the same account.", success)

		if _, err := wallet.Load(filepath.Join(t.TempDir(), "missing.ecdsa")); err == nil {
			t.Fatalf("\t%s\tShould fail to load a missing key file.", failed)
		}
		t.Logf("\t%s\tShould fail to load a missing key file.", success)
	}
}
