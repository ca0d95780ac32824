package state

import (
	"github.com/powledger/ledger/foundation/blockchain/database"
)

// VerifyChain reports whether every block of the chain is linked to its
// parent, carries a valid proof of work and pays the host its reward.
func (s *State) VerifyChain() bool {
	return s.ValidateChain() == nil
}

// ValidateChain performs the same checks as VerifyChain and returns the
// reason the first bad block failed.
func (s *State) ValidateChain() error {
	err := database.ValidateChain(s.RetrieveChain(), s.genesis.Rules(s.hostID))
	if err != nil {
		s.evHandler("state: ValidateChain: FAILED: %s", err)
	}

	return err
}
