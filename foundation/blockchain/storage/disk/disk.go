// Package disk implements the ability to persist the ledger to a single JSON
// file on disk.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// FileName is the name of the file holding the ledger inside the db path.
const FileName = "data.json"

// Disk represents the serialization implementation for reading and storing
// the ledger in a file on disk. This implements the database.Storage
// interface.
type Disk struct {
	mu     sync.Mutex
	dbPath string
}

// New constructs a Disk value for use. The directory is created if it
// doesn't exist.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since the file is
// written and immediately closed on every save.
func (d *Disk) Close() error {
	return nil
}

// Path returns the location of the ledger file.
func (d *Disk) Path() string {
	return filepath.Join(d.dbPath, FileName)
}

// Save writes the snapshot to a temporary file and renames it over the
// ledger file, so a reader never sees a partial write.
func (d *Disk) Save(snapshot database.Snapshot) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Marshal the snapshot for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(d.dbPath, FileName+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing ledger: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing ledger: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, d.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing ledger: %w", err)
	}

	return nil
}

// Load reads the ledger file. A missing or empty file returns
// database.ErrNotFound.
func (d *Disk) Load() (database.Snapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := os.ReadFile(d.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return database.Snapshot{}, database.ErrNotFound
		}
		return database.Snapshot{}, err
	}

	if len(data) == 0 {
		return database.Snapshot{}, database.ErrNotFound
	}

	var snapshot database.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return database.Snapshot{}, fmt.Errorf("decoding ledger: %w", err)
	}

	return snapshot, nil
}

// Reset will clear out the ledger on disk.
func (d *Disk) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.Remove(d.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
