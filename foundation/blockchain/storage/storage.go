// Package storage selects one of the storage backends for the ledger.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/storage/bolt"
	"github.com/powledger/ledger/foundation/blockchain/storage/disk"
	"github.com/powledger/ledger/foundation/blockchain/storage/leveldb"
	"github.com/powledger/ledger/foundation/blockchain/storage/memory"
)

// Set of storage kinds that can be opened.
const (
	KindDisk    = "disk"
	KindLevelDB = "leveldb"
	KindBolt    = "bolt"
	KindMemory  = "memory"
)

// boltFile is the name of the bolt database file inside the db path.
const boltFile = "ledger.db"

// Open constructs the storage of the specified kind rooted at dbPath.
func Open(kind string, dbPath string) (database.Storage, error) {
	switch kind {
	case KindDisk:
		return disk.New(dbPath)

	case KindLevelDB:
		return leveldb.New(dbPath)

	case KindBolt:
		if err := os.MkdirAll(dbPath, 0755); err != nil {
			return nil, err
		}
		return bolt.New(filepath.Join(dbPath, boltFile))

	case KindMemory:
		return memory.New()
	}

	return nil, fmt.Errorf("unknown storage kind %q", kind)
}
