package storage_test

import (
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/storage"
	"github.com/powledger/ledger/foundation/blockchain/storage/storagetest"
)

func Test_Open(t *testing.T) {
	kinds := []string{storage.KindDisk, storage.KindLevelDB, storage.KindBolt, storage.KindMemory}

	for _, kind := range kinds {
		f := func(t *testing.T) {
			strg, err := storage.Open(kind, t.TempDir())
			if err != nil {
				t.Fatalf("Should be able to open %s storage: %v", kind, err)
			}
			defer strg.Close()

			storagetest.Run(t, strg)
		}

		t.Run(kind, f)
	}

	if _, err := storage.Open("tape", t.TempDir()); err == nil {
		t.Fatalf("Should fail to open an unknown storage kind.")
	}
}
