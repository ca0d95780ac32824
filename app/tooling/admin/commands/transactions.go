package commands

import (
	"fmt"
	"io"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// Transactions prints the sealed and open transactions, optionally only
// those sent or received by the account.
func Transactions(w io.Writer, strg Loader, account string) error {
	blocks, open, err := load(strg)
	if err != nil {
		return err
	}

	match := func(tx database.Tx) bool {
		acct := database.AccountID(account)
		return account == "" || tx.Sender() == acct || tx.Recipient() == acct
	}

	for _, block := range blocks {
		for _, tx := range block.Transactions() {
			if match(tx) {
				fmt.Fprintf(w, "Block: %d  Kind: %s  From: %s  To: %s  Amount: %d\n",
					block.Index(), tx.Kind(), tx.Sender(), tx.Recipient(), tx.Amount())
			}
		}
	}

	for _, tx := range open {
		if match(tx) {
			fmt.Fprintf(w, "Open  Kind: %s  From: %s  To: %s  Amount: %d\n",
				tx.Kind(), tx.Sender(), tx.Recipient(), tx.Amount())
		}
	}

	return nil
}
