// Package mempool maintains the mempool for the blockchain.
package mempool

import (
	"sync"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// Mempool represents the set of open transactions waiting to be mined, kept
// in the order they were accepted. The underlying slice is never changed in
// place: every change installs a new slice, so a copy handed out earlier
// stays valid.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Replace swaps the full set of transactions in the pool.
func (mp *Mempool) Replace(txs []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append([]database.Tx(nil), txs...)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns a copy of the transactions in the order they were added.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return append([]database.Tx(nil), mp.pool...)
}

// CopyByAccount returns the transactions sent or received by the account.
func (mp *Mempool) CopyByAccount(account database.AccountID) []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var out []database.Tx
	for _, tx := range mp.pool {
		if tx.Sender() == account || tx.Recipient() == account {
			out = append(out, tx)
		}
	}

	return out
}
