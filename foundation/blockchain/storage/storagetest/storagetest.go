// Package storagetest provides a common set of checks every implementation
// of database.Storage must pass.
package storagetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Accounts used to build the snapshots.
const (
	Bill = database.AccountID("0x02aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	Jill = database.AccountID("0x03bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

// Snapshot builds a snapshot holding the genesis block, the number of extra
// blocks asked for and one open transaction.
func Snapshot(blocks int) database.Snapshot {
	chain := []database.Block{database.Genesis()}
	for i := 1; i <= blocks; i++ {
		prev := chain[i-1]
		txs := []database.Tx{
			database.NewTransfer(Bill, Jill, []byte{byte(i), 1, 2, 3}, uint64(i)),
			database.NewReward(Bill, 20),
		}
		chain = append(chain, database.NewBlock(uint64(i), prev.Hash(), txs, uint64(i*100), uint64(1_700_000_000+i)))
	}

	open := []database.Tx{
		database.NewTransfer(Jill, Bill, []byte{9, 9, 9}, 5),
	}

	return database.NewSnapshot(chain, open)
}

// Run exercises the storage through an empty load followed by a series of
// saves that grow and shrink the chain.
func Run(t *testing.T, storage database.Storage) {
	t.Helper()

	t.Log("Given the need to persist the ledger.")
	{
		t.Log("\tWhen handling an empty storage.")
		{
			if _, err := storage.Load(); !errors.Is(err, database.ErrNotFound) {
				t.Fatalf("\t%s\tShould get ErrNotFound from an empty storage, got %v.", failed, err)
			}
			t.Logf("\t%s\tShould get ErrNotFound from an empty storage.", success)
		}

		for _, n := range []int{0, 3, 1} {
			t.Logf("\tWhen saving a chain with %d mined blocks.", n)
			{
				exp := Snapshot(n)
				if err := storage.Save(exp); err != nil {
					t.Fatalf("\t%s\tShould be able to save the snapshot: %v", failed, err)
				}
				t.Logf("\t%s\tShould be able to save the snapshot.", success)

				got, err := storage.Load()
				if err != nil {
					t.Fatalf("\t%s\tShould be able to load the snapshot: %v", failed, err)
				}
				t.Logf("\t%s\tShould be able to load the snapshot.", success)

				if !reflect.DeepEqual(got, exp) {
					t.Logf("\t%s\tgot: %+v", failed, got)
					t.Logf("\t%s\texp: %+v", failed, exp)
					t.Fatalf("\t%s\tShould get back the same snapshot.", failed)
				}
				t.Logf("\t%s\tShould get back the same snapshot.", success)

				if _, _, err := got.Decode(); err != nil {
					t.Fatalf("\t%s\tShould be able to decode the snapshot: %v", failed, err)
				}
				t.Logf("\t%s\tShould be able to decode the snapshot.", success)
			}
		}
	}
}
