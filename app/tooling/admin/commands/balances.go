package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// Balances prints the balance of every account seen in the ledger, or only
// the one specified.
func Balances(w io.Writer, strg Loader, account string) error {
	blocks, open, err := load(strg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "LatestBlockHash: %s\n\n", blocks[len(blocks)-1].Hash())

	accounts := []database.AccountID{database.AccountID(account)}
	if account == "" {
		accounts = knownAccounts(blocks, open)
	}

	for _, acct := range accounts {
		fmt.Fprintf(w, "Account: %s  Balance: %d\n", acct, database.Balance(blocks, open, acct))
	}

	return nil
}

// knownAccounts returns every account that sent or received value, sorted.
func knownAccounts(blocks []database.Block, open []database.Tx) []database.AccountID {
	seen := make(map[database.AccountID]bool)

	add := func(tx database.Tx) {
		if !tx.Sender().IsMining() {
			seen[tx.Sender()] = true
		}
		seen[tx.Recipient()] = true
	}

	for _, block := range blocks {
		for _, tx := range block.Transactions() {
			add(tx)
		}
	}
	for _, tx := range open {
		add(tx)
	}

	out := make([]database.AccountID, 0, len(seen))
	for acct := range seen {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
