package database

import (
	"fmt"
)

// ChainError is returned by ValidateChain to identify the first block that
// breaks the rules of the chain.
type ChainError struct {
	Index  int
	Reason string
}

// Error implements the error interface.
func (ce *ChainError) Error() string {
	return fmt.Sprintf("block[%d]: %s", ce.Index, ce.Reason)
}

// =============================================================================

// Rules holds what ValidateChain checks each block against.
type Rules struct {
	Target string    // Hex prefix a proof hash must start with.
	Reward uint64    // Amount of the reward closing every block.
	Miner  AccountID // Account every reward is paid to. Empty accepts any.
}

// ValidateChain walks the chain and checks each block is linked to its
// parent by hash and carries a valid proof of work. The genesis block is
// exempt from these checks. The reward transaction at the end of each block
// is left out of the proof, so it is checked against the rules instead, and
// every sealed transfer must still carry its sender's signature.
func ValidateChain(blocks []Block, rules Rules) error {
	if len(blocks) == 0 {
		return &ChainError{Index: 0, Reason: "chain is empty"}
	}

	for i, block := range blocks {
		if block.index != uint64(i) {
			return &ChainError{Index: i, Reason: fmt.Sprintf("block number %d does not match position", block.index)}
		}

		if i == 0 {
			continue
		}

		parentHash := blocks[i-1].Hash()
		if block.previousHash != parentHash {
			return &ChainError{Index: i, Reason: fmt.Sprintf("previous hash %.16s does not match parent %.16s", block.previousHash, parentHash)}
		}

		n := len(block.transactions)
		if n == 0 || !block.transactions[n-1].IsReward() {
			return &ChainError{Index: i, Reason: "missing reward transaction"}
		}

		reward := block.transactions[n-1]
		if reward.amount != rules.Reward {
			return &ChainError{Index: i, Reason: fmt.Sprintf("reward %d does not match %d", reward.amount, rules.Reward)}
		}

		if rules.Miner != "" && reward.recipient != rules.Miner {
			return &ChainError{Index: i, Reason: fmt.Sprintf("reward paid to %s", short(reward.recipient))}
		}

		if !IsValidProof(block.transactions[:n-1], block.previousHash, block.proof, rules.Target) {
			return &ChainError{Index: i, Reason: fmt.Sprintf("proof %d is invalid", block.proof)}
		}

		for j, tx := range block.transactions[:n-1] {
			if tx.IsReward() || !VerifyTx(tx) {
				return &ChainError{Index: i, Reason: fmt.Sprintf("tx[%d] is not a signed transfer", j)}
			}
		}
	}

	return nil
}

// Balance calculates the balance for the account. Value received only counts
// once it is sealed in a block, while value sent counts as soon as it sits in
// the open transactions so it can't be spent twice.
func Balance(blocks []Block, open []Tx, account AccountID) int64 {
	var received, sent uint64

	for _, block := range blocks {
		for _, tx := range block.transactions {
			if tx.recipient == account {
				received += tx.amount
			}
			if tx.sender == account {
				sent += tx.amount
			}
		}
	}

	for _, tx := range open {
		if tx.sender == account {
			sent += tx.amount
		}
	}

	return int64(received) - int64(sent)
}
