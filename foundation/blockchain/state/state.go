// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/genesis"
	"github.com/powledger/ledger/foundation/blockchain/mempool"
)

// Set of errors a caller is expected to check for.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrBlockNotFound      = errors.New("block not found")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of persisting blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining in the background.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	HostID    database.AccountID
	Genesis   genesis.Genesis
	Storage   database.Storage
	EvHandler EventHandler
}

// State manages the blockchain database.
type State struct {
	hostID    database.AccountID
	evHandler EventHandler
	genesis   genesis.Genesis
	storage   database.Storage

	// writeMu serializes every operation that changes the ledger. mu guards
	// the chain and the mempool together so readers see both from the same
	// point in time.
	writeMu sync.Mutex
	mu      sync.RWMutex
	chain   []database.Block
	mempool *mempool.Mempool

	Worker Worker
}

// New constructs a new blockchain for data management. The chain starts with
// the genesis block and is then replaced with whatever the storage holds. An
// empty storage is not an error, unreadable storage is.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if !cfg.HostID.IsAccountID() {
		return nil, fmt.Errorf("host account %q is not properly formatted", cfg.HostID)
	}

	if cfg.Storage == nil {
		return nil, errors.New("storage must be provided")
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	chain := []database.Block{database.Genesis()}
	pool := mempool.New()

	// Hydrate the ledger from storage if anything was persisted before.
	snapshot, err := cfg.Storage.Load()
	switch {
	case errors.Is(err, database.ErrNotFound):
		ev("state: New: no persisted state, starting from genesis")

	case err != nil:
		return nil, fmt.Errorf("loading state: %w", err)

	default:
		blocks, open, err := snapshot.Decode()
		if err != nil {
			return nil, fmt.Errorf("decoding state: %w", err)
		}
		chain = blocks
		pool.Replace(open)

		ev("state: New: loaded blocks[%d] open txs[%d]", len(chain), len(open))
	}

	// A chain that doesn't verify is reported, not repaired.
	if err := database.ValidateChain(chain, cfg.Genesis.Rules(cfg.HostID)); err != nil {
		ev("state: New: WARNING: chain failed verification: %s", err)
	}

	state := State{
		hostID:    cfg.HostID,
		evHandler: ev,
		genesis:   cfg.Genesis,
		storage:   cfg.Storage,
		chain:     chain,
		mempool:   pool,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	// Wait for any write in flight before closing the storage.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.storage.Close()
}

// =============================================================================

// commit persists the next state of the ledger and only then installs it in
// memory. If the storage fails nothing changes. The caller must hold writeMu.
func (s *State) commit(chain []database.Block, open []database.Tx) error {
	if err := s.storage.Save(database.NewSnapshot(chain, open)); err != nil {
		return fmt.Errorf("persisting state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain = chain

	if len(open) == 0 {
		s.mempool.Truncate()
		return nil
	}
	s.mempool.Replace(open)

	return nil
}
