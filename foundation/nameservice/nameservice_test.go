package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/wallet"
	"github.com/powledger/ledger/foundation/nameservice"
)

func Test_Lookup(t *testing.T) {
	root := t.TempDir()

	w, err := wallet.Generate()
	if err != nil {
		t.Fatalf("Should be able to generate a wallet: %v", err)
	}

	if err := w.Save(filepath.Join(root, "kennedy"+nameservice.KeyExtension)); err != nil {
		t.Fatalf("Should be able to save the wallet: %v", err)
	}

	ns, err := nameservice.New(root)
	if err != nil {
		t.Fatalf("Should be able to construct the name service: %v", err)
	}

	if name := ns.Lookup(w.Account()); name != "kennedy" {
		t.Fatalf("Should find the name for the account, got %q.", name)
	}

	other, _ := wallet.Generate()
	if name := ns.Lookup(other.Account()); name != string(other.Account()) {
		t.Fatalf("Should get back the account for an unknown account, got %q.", name)
	}

	if len(ns.Copy()) != 1 {
		t.Fatalf("Should hold a single account.")
	}

	empty, err := nameservice.New(filepath.Join(root, "missing"))
	if err != nil || len(empty.Copy()) != 0 {
		t.Fatalf("Should get an empty name service for a missing folder: %v", err)
	}
}
