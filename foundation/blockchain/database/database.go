// Package database handles the data model of the blockchain: accounts,
// transactions, blocks, the proof of work puzzle and the contract for
// persisting the chain.
package database

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Storage when nothing has been persisted yet.
var ErrNotFound = errors.New("no persisted state")

// Storage interface represents the behavior required to be implemented by any
// package providing support for persisting the ledger.
type Storage interface {
	Load() (Snapshot, error)
	Save(snapshot Snapshot) error
	Close() error
}

// =============================================================================

// Snapshot is the full persisted state of the ledger.
type Snapshot struct {
	Blockchain       []BlockData `json:"blockchain"`
	OpenTransactions []TxData    `json:"open_transactions"`
}

// NewSnapshot constructs the value to persist from the chain and the
// open transactions.
func NewSnapshot(blocks []Block, open []Tx) Snapshot {
	snap := Snapshot{
		Blockchain:       make([]BlockData, len(blocks)),
		OpenTransactions: make([]TxData, len(open)),
	}

	for i, block := range blocks {
		snap.Blockchain[i] = NewBlockData(block)
	}

	for i, tx := range open {
		snap.OpenTransactions[i] = NewTxData(tx)
	}

	return snap
}

// Decode converts a snapshot back into the chain and the open transactions.
// A snapshot without a genesis block is malformed.
func (s Snapshot) Decode() ([]Block, []Tx, error) {
	if len(s.Blockchain) == 0 {
		return nil, nil, errors.New("snapshot has no blocks")
	}

	blocks := make([]Block, len(s.Blockchain))
	for i, data := range s.Blockchain {
		block, err := ToBlock(data)
		if err != nil {
			return nil, nil, err
		}
		blocks[i] = block
	}

	if blocks[0].Hash() != Genesis().Hash() {
		return nil, nil, errors.New("snapshot does not start with the genesis block")
	}

	open := make([]Tx, len(s.OpenTransactions))
	for i, data := range s.OpenTransactions {
		tx, err := ToTx(data)
		if err != nil {
			return nil, nil, fmt.Errorf("open tx[%d]: %w", i, err)
		}
		if tx.IsReward() {
			return nil, nil, fmt.Errorf("open tx[%d]: reward transactions can't be pending", i)
		}
		open[i] = tx
	}

	return blocks, open, nil
}
