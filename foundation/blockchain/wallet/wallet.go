// Package wallet holds a secp256k1 key pair and signs transfers for the
// account it controls.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/signature"
)

// ErrNotOwner is returned when asked to sign for an account the wallet
// doesn't hold the key for.
var ErrNotOwner = errors.New("wallet does not own the sender account")

// Wallet represents a key pair and the account derived from it.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
	account    database.AccountID
}

// Generate constructs a wallet with a new random key pair.
func Generate() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	return newWallet(privateKey), nil
}

// FromHex constructs a wallet from a hex encoded private key.
func FromHex(hexKey string) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	return newWallet(privateKey), nil
}

// Load constructs a wallet from the private key file at the specified path.
func Load(path string) (*Wallet, error) {
	privateKey, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("loading key %q: %w", path, err)
	}

	return newWallet(privateKey), nil
}

// Save writes the private key to the specified path, creating the directory
// if needed. The file is only readable by the owner.
func (w *Wallet) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	return crypto.SaveECDSA(path, w.privateKey)
}

// Account returns the account id this wallet controls.
func (w *Wallet) Account() database.AccountID {
	return w.account
}

// PrivateKey returns the private key for the wallet.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	return w.privateKey
}

// Sign produces the signature for a transfer of amount from sender to
// recipient. The sender must be the account of the wallet.
func (w *Wallet) Sign(sender database.AccountID, recipient database.AccountID, amount uint64) ([]byte, error) {
	if sender != w.account {
		return nil, ErrNotOwner
	}

	tx := database.CanonicalTx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	return signature.Sign(tx, w.privateKey)
}

// SignTx produces a transfer from the wallet's account that is ready to be
// submitted.
func (w *Wallet) SignTx(recipient database.AccountID, amount uint64) (database.Tx, error) {
	sig, err := w.Sign(w.account, recipient, amount)
	if err != nil {
		return database.Tx{}, err
	}

	return database.NewTransfer(w.account, recipient, sig, amount), nil
}

// Verify reports whether the transaction carries a valid signature from its
// sender. Rewards carry no signature and always pass.
func Verify(tx database.Tx) bool {
	return database.VerifyTx(tx)
}

// =============================================================================

func newWallet(privateKey *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		privateKey: privateKey,
		account:    database.PublicKeyToAccountID(privateKey.PublicKey),
	}
}
