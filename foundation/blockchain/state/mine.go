package state

import (
	"context"
	"fmt"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// MineBlock seals every open transaction into a new block, rewards the host
// account and clears the open transactions. Nothing changes if any open
// transaction fails signature verification, the search for a proof is
// cancelled, or the new state can't be persisted.
func (s *State) MineBlock(ctx context.Context) (database.Block, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.evHandler("state: MineBlock: MINING: started")
	defer s.evHandler("state: MineBlock: MINING: completed")

	chain := s.RetrieveChain()
	open := s.mempool.Copy()
	latest := chain[len(chain)-1]

	s.evHandler("state: MineBlock: MINING: verify open txs[%d]", len(open))

	for _, tx := range open {
		if !database.VerifyTx(tx) {
			s.evHandler("state: MineBlock: MINING: ERROR: tx[%s]: %s", tx, ErrInvalidSignature)
			return database.Block{}, fmt.Errorf("open tx %s: %w", tx, ErrInvalidSignature)
		}
	}

	s.evHandler("state: MineBlock: MINING: perform POW: prevBlk[%d]", latest.Index())

	prevHash := latest.Hash()
	proof, err := database.FindProofContext(ctx, open, prevHash, s.genesis.Difficulty)
	if err != nil {
		s.evHandler("state: MineBlock: MINING: CANCELLED: %s", err)
		return database.Block{}, err
	}

	// The reward is added after the proof is found, so it is not part of
	// the puzzle.
	txs := append(open, database.NewReward(s.hostID, s.genesis.MiningReward))
	block := database.NewBlock(latest.Index()+1, prevHash, txs, proof, 0)

	next := make([]database.Block, len(chain), len(chain)+1)
	copy(next, chain)
	next = append(next, block)

	if err := s.commit(next, nil); err != nil {
		s.evHandler("state: MineBlock: MINING: ERROR: %s", err)
		return database.Block{}, err
	}

	s.evHandler("state: MineBlock: MINING: SOLVED: blk[%d]: proof[%d]: hash[%.16s]", block.Index(), proof, block.Hash())

	return block, nil
}
