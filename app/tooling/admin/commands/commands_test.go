package commands_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/powledger/ledger/app/tooling/admin/commands"
	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/genesis"
	"github.com/powledger/ledger/foundation/blockchain/state"
	"github.com/powledger/ledger/foundation/blockchain/storage/memory"
	"github.com/powledger/ledger/foundation/blockchain/storage/storagetest"
	"github.com/powledger/ledger/foundation/blockchain/wallet"
)

func Test_Commands(t *testing.T) {
	strg, err := memory.New()
	if err != nil {
		t.Fatalf("Should be able to construct the storage: %v", err)
	}

	var buf bytes.Buffer
	if err := commands.Verify(&buf, strg, genesis.Default(), ""); err != nil {
		t.Fatalf("Should verify an empty ledger: %v", err)
	}
	if !strings.Contains(buf.String(), "VALID") {
		t.Fatalf("Should report the empty ledger as valid: %s", buf.String())
	}

	// Break the link between the mined blocks.
	snapshot := storagetest.Snapshot(2)
	snapshot.Blockchain[2].PreviousHash = "bad"

	if err := strg.Save(snapshot); err != nil {
		t.Fatalf("Should be able to save the snapshot: %v", err)
	}

	buf.Reset()
	if err := commands.Verify(&buf, strg, genesis.Default(), ""); err == nil {
		t.Fatalf("Should fail to verify a broken chain.")
	}
	if !strings.Contains(buf.String(), "INVALID") {
		t.Fatalf("Should report the chain as invalid: %s", buf.String())
	}

	buf.Reset()
	if err := commands.Balances(&buf, strg, ""); err != nil {
		t.Fatalf("Should be able to print balances: %v", err)
	}

	// Bill: 2 rewards of 20, sent 1 and 2, Jill sent 5 back while open.
	exp := "Account: " + string(storagetest.Bill) + "  Balance: 37"
	if !strings.Contains(buf.String(), exp) {
		t.Fatalf("Should print the balance for Bill:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), string(database.MiningAccountID)) {
		t.Fatalf("Should not list the mining account:\n%s", buf.String())
	}

	buf.Reset()
	if err := commands.Transactions(&buf, strg, string(storagetest.Jill)); err != nil {
		t.Fatalf("Should be able to print transactions: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Fatalf("Should print 3 transactions for Jill, got %d:\n%s", n, buf.String())
	}
}

func Test_VerifyHost(t *testing.T) {
	host, err := wallet.FromHex("8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0")
	if err != nil {
		t.Fatalf("Should be able to load the host key: %v", err)
	}

	strg, err := memory.New()
	if err != nil {
		t.Fatalf("Should be able to construct the storage: %v", err)
	}

	st, err := state.New(state.Config{
		HostID:  host.Account(),
		Genesis: genesis.Default(),
		Storage: strg,
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %v", err)
	}

	if _, err := st.MineBlock(t.Context()); err != nil {
		t.Fatalf("Should be able to mine a block: %v", err)
	}

	var buf bytes.Buffer
	if err := commands.Verify(&buf, strg, genesis.Default(), string(host.Account())); err != nil {
		t.Fatalf("Should verify a chain mined by the host: %v\n%s", err, buf.String())
	}

	buf.Reset()
	if err := commands.Verify(&buf, strg, genesis.Default(), string(storagetest.Jill)); err == nil {
		t.Fatalf("Should fail to verify rewards paid to another host.")
	}
	if !strings.Contains(buf.String(), "INVALID") {
		t.Fatalf("Should report the chain as invalid: %s", buf.String())
	}
}
