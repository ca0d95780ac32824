// Package leveldb implements the ability to persist the ledger in a LevelDB
// database, one key per block.
package leveldb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Set of keys used to store the ledger.
var (
	blockPrefix = []byte("block/")
	openKey     = []byte("open")
)

// LevelDB represents the serialization implementation for storing the ledger
// in LevelDB. This implements the database.Storage interface.
type LevelDB struct {
	db *leveldb.DB
}

// New opens or creates the database at the specified path.
func New(dbPath string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb: %w", err)
	}

	return &LevelDB{db: db}, nil
}

// Close closes the database.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

// Save writes every block and the open transactions in a single batch.
// Blocks beyond the length of the snapshot are removed.
func (l *LevelDB) Save(snapshot database.Snapshot) error {
	batch := new(leveldb.Batch)

	for i, block := range snapshot.Blockchain {
		data, err := json.Marshal(block)
		if err != nil {
			return err
		}
		batch.Put(blockKey(uint64(i)), data)
	}

	iter := l.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	for ok := iter.Seek(blockKey(uint64(len(snapshot.Blockchain)))); ok; ok = iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
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
	batch.Put(openKey, data)

	return l.db.Write(batch, nil)
}

// Load reads the blocks in key order and the open transactions. An empty
// database returns database.ErrNotFound.
func (l *LevelDB) Load() (database.Snapshot, error) {
	var snapshot database.Snapshot

	iter := l.db.NewIterator(util.BytesPrefix(blockPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		var block database.BlockData
		if err := json.Unmarshal(iter.Value(), &block); err != nil {
			return database.Snapshot{}, fmt.Errorf("decoding %s: %w", iter.Key(), err)
		}
		snapshot.Blockchain = append(snapshot.Blockchain, block)
	}

	if err := iter.Error(); err != nil {
		return database.Snapshot{}, err
	}

	data, err := l.db.Get(openKey, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		if len(snapshot.Blockchain) == 0 {
			return database.Snapshot{}, database.ErrNotFound
		}

	case err != nil:
		return database.Snapshot{}, err

	default:
		if err := json.Unmarshal(data, &snapshot.OpenTransactions); err != nil {
			return database.Snapshot{}, fmt.Errorf("decoding %s: %w", openKey, err)
		}
	}

	return snapshot, nil
}

// blockKey zero pads the index so keys sort in chain order.
func blockKey(index uint64) []byte {
	key := append([]byte(nil), blockPrefix...)
	num := strconv.FormatUint(index, 10)
	for i := len(num); i < 20; i++ {
		key = append(key, '0')
	}

	return append(key, num...)
}
