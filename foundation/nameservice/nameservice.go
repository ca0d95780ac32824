// Package nameservice reads a folder of wallet key files and creates a name
// service lookup for the accounts they control.
package nameservice

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/wallet"
)

// KeyExtension is the file extension of a wallet key file.
const KeyExtension = ".ecdsa"

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[database.AccountID]string
}

// New constructs a name service with the accounts of the key files found
// under root. The name is the file name without its extension. A missing
// root gives an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[database.AccountID]string),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != KeyExtension {
			return nil
		}

		w, err := wallet.Load(fileName)
		if err != nil {
			return err
		}

		ns.accounts[w.Account()] = strings.TrimSuffix(filepath.Base(fileName), KeyExtension)

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ns, nil
		}
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account. Unknown accounts are
// returned as is.
func (ns *NameService) Lookup(account database.AccountID) string {
	name, exists := ns.accounts[account]
	if !exists {
		return string(account)
	}
	return name
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[database.AccountID]string {
	cpy := make(map[database.AccountID]string, len(ns.accounts))
	for account, name := range ns.accounts {
		cpy[account] = name
	}
	return cpy
}
