// Package signature provides helper functions for handling the blockchain
// hashing and signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns the hex encoded SHA-256 digest of the JSON form of the value.
// Maps are marshaled with their keys sorted, so values built from maps hash
// the same on every run.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	return HashBytes(data)
}

// HashBytes returns the hex encoded SHA-256 digest of the data.
func HashBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Digest returns the 32 byte SHA-256 digest of the JSON form of the value.
// This is the data that is signed and verified.
func Digest(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)
	return hash[:], nil
}

// Sign uses the specified private key to sign the value. The signature is
// returned in the 65 byte [R|S|V] format.
func Sign(value any, privateKey *ecdsa.PrivateKey) ([]byte, error) {

	// Prepare the data for signing.
	digest, err := Digest(value)
	if err != nil {
		return nil, err
	}

	// Sign the digest with the private key to produce a signature. The
	// nonce is derived from the key and digest (RFC6979).
	sig, err := crypto.Sign(digest, privateKey)
	if err != nil {
		return nil, err
	}

	// Check the signature against the public key before handing it out.
	if !crypto.VerifySignature(crypto.CompressPubkey(&privateKey.PublicKey), digest, sig[:crypto.RecoveryIDOffset]) {
		return nil, errors.New("invalid signature")
	}

	return sig, nil
}

// Verify checks the signature was produced over the value by the private key
// matching the specified hex encoded public key. Malformed key material or
// signatures are reported as a failed verification.
func Verify(value any, publicKey string, sig []byte) bool {
	pk, err := hexutil.Decode(publicKey)
	if err != nil {
		return false
	}

	if _, err := crypto.DecompressPubkey(pk); err != nil {
		return false
	}

	if len(sig) != crypto.SignatureLength {
		return false
	}

	digest, err := Digest(value)
	if err != nil {
		return false
	}

	return crypto.VerifySignature(pk, digest, sig[:crypto.RecoveryIDOffset])
}

// PublicKeyString returns the hex encoded compressed form of the public key.
func PublicKeyString(pk ecdsa.PublicKey) string {
	return hexutil.Encode(crypto.CompressPubkey(&pk))
}

// SignatureString returns the signature as a hex string.
func SignatureString(sig []byte) string {
	if len(sig) == 0 {
		return ""
	}
	return hexutil.Encode(sig)
}

// FromSignatureString converts the hex representation of a signature back into
// its bytes. An empty string represents an empty signature.
func FromSignatureString(sigStr string) ([]byte, error) {
	if sigStr == "" {
		return nil, nil
	}

	return hexutil.Decode(sigStr)
}
