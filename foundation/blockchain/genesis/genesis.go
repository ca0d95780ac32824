// Package genesis maintains access to the genesis file which holds the
// settings every block of the chain is mined and checked with.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// Default values used when no genesis file exists.
const (
	DefaultMiningReward = 20
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`
	MiningReward uint64    `json:"mining_reward"` // Reward for mining a block.
	Difficulty   string    `json:"difficulty"`    // Hex prefix a proof hash must start with.
}

// Default returns the settings used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		MiningReward: DefaultMiningReward,
		Difficulty:   database.DefaultTarget,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. A missing file is not an error,
// the default settings are returned instead.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the difficulty is something a hex encoded hash can match
// and the reward fits the signed balances it is counted into.
func (g Genesis) Validate() error {
	if g.MiningReward > math.MaxInt64 {
		return fmt.Errorf("mining reward %d is too large", g.MiningReward)
	}

	for _, c := range []byte(g.Difficulty) {
		if !('0' <= c && c <= '9') && !('a' <= c && c <= 'f') {
			return fmt.Errorf("difficulty %q must be lowercase hex", g.Difficulty)
		}
	}

	if len(g.Difficulty) > 64 {
		return fmt.Errorf("difficulty %q is longer than a hash", g.Difficulty)
	}

	return nil
}

// Rules returns what a chain mined under these settings is checked against.
// An empty miner accepts rewards paid to any account.
func (g Genesis) Rules(miner database.AccountID) database.Rules {
	return database.Rules{
		Target: g.Difficulty,
		Reward: g.MiningReward,
		Miner:  miner,
	}
}
