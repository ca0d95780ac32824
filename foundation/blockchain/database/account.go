package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/powledger/ledger/foundation/blockchain/signature"
)

// MiningAccountID is the reserved sender of the reward transaction that is
// added to every mined block.
const MiningAccountID AccountID = "MINING"

// =============================================================================

// AccountID represents an account id that is used to sign transactions and is
// associated with transactions on the blockchain. The id is the hex encoded
// compressed public key, so a signature can be checked with nothing more than
// the transaction itself.
type AccountID string

// ToAccountID converts a hex-encoded string to an account and validates the
// hex-encoded string is formatted correctly.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(signature.PublicKeyString(pk))
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded compressed public key.
func (a AccountID) IsAccountID() bool {
	const compressedKeyLength = 33

	if !has0xPrefix(a) {
		return false
	}
	a = a[2:]

	if len(a) != 2*compressedKeyLength || !isHex(a) {
		return false
	}

	// Compressed keys start with 02 or 03 depending on the parity of Y.
	return a[0] == '0' && (a[1] == '2' || a[1] == '3')
}

// IsMining reports whether this is the reserved reward sender.
func (a AccountID) IsMining() bool {
	return a == MiningAccountID
}

// =============================================================================

// has0xPrefix validates the account starts with a 0x.
func has0xPrefix(a AccountID) bool {
	return len(a) >= 2 && a[0] == '0' && (a[1] == 'x' || a[1] == 'X')
}

// isHex validates whether each byte is valid hexadecimal string.
func isHex(a AccountID) bool {
	if len(a)%2 != 0 {
		return false
	}

	for _, c := range []byte(a) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
