package state

import (
	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/genesis"
)

// RetrieveHostID returns the account that receives mining rewards.
func (s *State) RetrieveHostID() database.AccountID {
	return s.hostID
}

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveChain returns a copy of the blocks in the chain.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]database.Block(nil), s.chain...)
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain[len(s.chain)-1]
}

// RetrieveOpenTransactions returns a copy of the open transactions in the
// order they were accepted.
func (s *State) RetrieveOpenTransactions() []database.Tx {
	return s.mempool.Copy()
}

// RetrieveSnapshot returns the chain and the open transactions as they were
// at the same point in time.
func (s *State) RetrieveSnapshot() ([]database.Block, []database.Tx) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]database.Block(nil), s.chain...), s.mempool.Copy()
}
