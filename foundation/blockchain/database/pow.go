package database

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/powledger/ledger/foundation/blockchain/signature"
)

// DefaultTarget is the hex prefix a proof hash must start with.
const DefaultTarget = "8e"

// ctxCheckInterval is how many attempts run between checks of the context.
const ctxCheckInterval = 4096

// =============================================================================

// IsValidProof checks the proof solves the puzzle for the set of transactions
// and the previous block hash. The SHA-256 of the canonical transactions, the
// previous hash and the proof written out in decimal must start with target.
func IsValidProof(txs []Tx, previousHash string, proof uint64, target string) bool {
	hash := proofHash(proofPrefix(txs, previousHash), proof)
	return strings.HasPrefix(hash, target)
}

// FindProof performs the work of mining by searching every proof starting
// at zero until one solves the puzzle. There is no upper bound.
func FindProof(txs []Tx, previousHash string, target string) uint64 {
	prefix := proofPrefix(txs, previousHash)

	var proof uint64
	for !strings.HasPrefix(proofHash(prefix, proof), target) {
		proof++
	}

	return proof
}

// FindProofContext performs the same search as FindProof but stops when the
// context is cancelled.
func FindProofContext(ctx context.Context, txs []Tx, previousHash string, target string) (uint64, error) {
	prefix := proofPrefix(txs, previousHash)

	var proof uint64
	for {
		if proof%ctxCheckInterval == 0 && ctx.Err() != nil {
			return 0, ctx.Err()
		}

		if strings.HasPrefix(proofHash(prefix, proof), target) {
			return proof, nil
		}

		proof++
	}
}

// =============================================================================

// proofPrefix builds the part of the puzzle that doesn't change while
// searching for a proof.
func proofPrefix(txs []Tx, previousHash string) []byte {
	data, err := json.Marshal(canonicalTxs(txs))
	if err != nil {

		// A slice of structs holding strings and integers always marshals.
		panic(err)
	}

	return append(data, previousHash...)
}

// proofHash returns the hex hash for the prefix and proof.
func proofHash(prefix []byte, proof uint64) string {
	buf := make([]byte, 0, len(prefix)+20)
	buf = append(buf, prefix...)
	buf = strconv.AppendUint(buf, proof, 10)

	return signature.HashBytes(buf)
}
