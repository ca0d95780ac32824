// Package bolt implements the ability to persist the ledger in a bbolt
// database file.
package bolt

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/powledger/ledger/foundation/blockchain/database"
	bbolt "go.etcd.io/bbolt"
)

// Set of buckets and keys used to store the ledger.
var (
	blocksBucket = []byte("blocks")
	poolBucket   = []byte("pool")
	openKey      = []byte("open")
)

// Bolt represents the serialization implementation for storing the ledger
// in a bbolt file. This implements the database.Storage interface.
type Bolt struct {
	db *bbolt.DB
}

// New opens or creates the database file at the specified path.
func New(dbFile string) (*Bolt, error) {
	db, err := bbolt.Open(dbFile, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Save writes every block and the open transactions inside one transaction.
// Blocks beyond the length of the snapshot are removed.
func (b *Bolt) Save(snapshot database.Snapshot) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		blocks, err := tx.CreateBucketIfNotExists(blocksBucket)
		if err != nil {
			return err
		}

		for i, block := range snapshot.Blockchain {
			data, err := json.Marshal(block)
			if err != nil {
				return err
			}
			if err := blocks.Put(blockKey(uint64(i)), data); err != nil {
				return err
			}
		}

		var stale [][]byte
		c := blocks.Cursor()
		for k, _ := c.Seek(blockKey(uint64(len(snapshot.Blockchain)))); k != nil; k, _ = c.Next() {
			stale = append(stale, append([]byte(nil), k...))
		}

		for _, k := range stale {
			if err := blocks.Delete(k); err != nil {
				return err
			}
		}

		pool, err := tx.CreateBucketIfNotExists(poolBucket)
		if err != nil {
			return err
		}

		open := snapshot.OpenTransactions
		if open == nil {
			open = []database.TxData{}
		}

		data, err := json.Marshal(open)
		if err != nil {
			return err
		}

		return pool.Put(openKey, data)
	})
}

// Load reads the blocks in index order and the open transactions. A database
// that was never written returns database.ErrNotFound.
func (b *Bolt) Load() (database.Snapshot, error) {
	var snapshot database.Snapshot

	err := b.db.View(func(tx *bbolt.Tx) error {
		blocks := tx.Bucket(blocksBucket)
		if blocks == nil {
			return database.ErrNotFound
		}

		err := blocks.ForEach(func(k, v []byte) error {
			var block database.BlockData
			if err := json.Unmarshal(v, &block); err != nil {
				return fmt.Errorf("decoding block[%d]: %w", binary.BigEndian.Uint64(k), err)
			}
			snapshot.Blockchain = append(snapshot.Blockchain, block)
			return nil
		})
		if err != nil {
			return err
		}

		pool := tx.Bucket(poolBucket)
		if pool == nil {
			return nil
		}

		if data := pool.Get(openKey); data != nil {
			if err := json.Unmarshal(data, &snapshot.OpenTransactions); err != nil {
				return fmt.Errorf("decoding open transactions: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return database.Snapshot{}, err
	}

	if len(snapshot.Blockchain) == 0 && len(snapshot.OpenTransactions) == 0 {
		return database.Snapshot{}, database.ErrNotFound
	}

	return snapshot, nil
}

// blockKey encodes the index big endian so keys sort in chain order.
func blockKey(index uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, index)
	return key
}
