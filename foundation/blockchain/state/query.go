package state

import (
	"fmt"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// QueryLatest represents to query the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// Balance returns the balance of the account. Value sent counts as soon as it
// is open, value received only once it is mined.
func (s *State) Balance(account database.AccountID) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return database.Balance(s.chain, s.mempool.Copy(), account)
}

// QueryMempoolLength returns the current number of open transactions.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlock returns the block at the specified index. Use QueryLatest to
// get the last block of the chain.
func (s *State) QueryBlock(index uint64) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index == QueryLatest {
		return s.chain[len(s.chain)-1], nil
	}

	if index >= uint64(len(s.chain)) {
		return database.Block{}, fmt.Errorf("block[%d]: %w", index, ErrBlockNotFound)
	}

	return s.chain[index], nil
}

// QueryBlocksByAccount returns the set of blocks holding a transaction sent
// or received by the account. If the account is empty, all blocks are
// returned.
func (s *State) QueryBlocksByAccount(account database.AccountID) []database.Block {
	var out []database.Block

	for _, block := range s.RetrieveChain() {
		if account == "" {
			out = append(out, block)
			continue
		}

		for _, tx := range block.Transactions() {
			if tx.Sender() == account || tx.Recipient() == account {
				out = append(out, block)
				break
			}
		}
	}

	return out
}

// QueryOpenByAccount returns the open transactions sent or received by the
// account.
func (s *State) QueryOpenByAccount(account database.AccountID) []database.Tx {
	return s.mempool.CopyByAccount(account)
}
