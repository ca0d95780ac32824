package worker

import (
	"time"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation takes all the open transactions and writes a new block
// to the chain.
func (w *Worker) runMiningOperation() {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	// Make sure there are transactions to mine.
	length := w.state.QueryMempoolLength()
	if length == 0 {
		w.evHandler("worker: runMiningOperation: MINING: no transactions to mine: Txs[%d]", length)
		return
	}

	t := time.Now()
	block, err := w.state.MineBlock(w.ctx)
	duration := time.Since(t)

	w.evHandler("worker: runMiningOperation: MINING: mining duration[%v]", duration)

	if err != nil {
		switch {
		case w.ctx.Err() != nil:
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: complete")
		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		}
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: SOLVED: blk[%d]: txs[%d]", block.Index(), block.TxCount())
}
