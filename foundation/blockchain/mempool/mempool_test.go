package mempool_test

import (
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	bill = database.AccountID("0x02aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	jill = database.AccountID("0x03bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	ed   = database.AccountID("0x02cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc")
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				database.NewTransfer(bill, jill, []byte{1}, 10),
				database.NewTransfer(jill, ed, []byte{2}, 50),
				database.NewTransfer(bill, ed, []byte{3}, 100),
				database.NewTransfer(ed, bill, []byte{4}, 10),
			},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					mp.Replace(tst.txs)
					if n := mp.Count(); n != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould get back the new count, got %d.", failed, testID, n)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add new transactions.", success, testID)

					before := mp.Copy()
					for i, tx := range before {
						if tx.Recipient() != tst.txs[i].Recipient() || tx.Amount() != tst.txs[i].Amount() {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould get back transactions in insertion order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back transactions in insertion order.", success, testID)

					if got := len(mp.CopyByAccount(bill)); got != 3 {
						t.Fatalf("\t%s\tTest %d:\tShould find 3 transactions for bill, got %d.", failed, testID, got)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to filter by account.", success, testID)

					mp.Replace(append(before, database.NewTransfer(jill, bill, []byte{5}, 1)))
					before[0] = database.NewTransfer(ed, ed, []byte{6}, 1)
					if len(before) != len(tst.txs) || mp.Copy()[0].Amount() != tst.txs[0].Amount() {
						t.Fatalf("\t%s\tTest %d:\tShould not change an earlier copy.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not change an earlier copy.", success, testID)

					mp.Replace(tst.txs[:2])
					if mp.Count() != 2 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to replace the pool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to replace the pool.", success, testID)

					mp.Truncate()
					if l := len(mp.Copy()); l != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to truncate mempool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to truncate mempool.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
