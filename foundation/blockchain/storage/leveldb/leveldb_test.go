package leveldb_test

import (
	"path/filepath"
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/storage/leveldb"
	"github.com/powledger/ledger/foundation/blockchain/storage/storagetest"
)

func Test_Storage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.ldb")

	storage, err := leveldb.New(path)
	if err != nil {
		t.Fatalf("Should be able to open the database: %v", err)
	}

	storagetest.Run(t, storage)

	if err := storage.Close(); err != nil {
		t.Fatalf("Should be able to close the database: %v", err)
	}

	// The last save held a single mined block.
	storage, err = leveldb.New(path)
	if err != nil {
		t.Fatalf("Should be able to reopen the database: %v", err)
	}
	defer storage.Close()

	snapshot, err := storage.Load()
	if err != nil {
		t.Fatalf("Should be able to load after reopening: %v", err)
	}

	if len(snapshot.Blockchain) != 2 {
		t.Fatalf("Should get back 2 blocks after reopening, got %d.", len(snapshot.Blockchain))
	}
}
