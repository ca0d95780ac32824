// Package commands contains the functionality for the set of commands
// currently supported by the admin tool.
package commands

import (
	"errors"
	"fmt"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Loader is the part of the storage the commands need.
type Loader interface {
	Load() (database.Snapshot, error)
}

// load reads and decodes the ledger from storage.
func load(strg Loader) ([]database.Block, []database.Tx, error) {
	snapshot, err := strg.Load()
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return []database.Block{database.Genesis()}, nil, nil
		}
		return nil, nil, err
	}

	blocks, open, err := snapshot.Decode()
	if err != nil {
		return nil, nil, fmt.Errorf("decoding ledger: %w", err)
	}

	return blocks, open, nil
}
