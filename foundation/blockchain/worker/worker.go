// Package worker implements background mining for the blockchain.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/powledger/ledger/foundation/blockchain/state"
)

// Worker manages the mining workflow for the blockchain.
type Worker struct {
	state       *state.State
	wg          sync.WaitGroup
	ticker      *time.Ticker
	shut        chan struct{}
	startMining chan bool
	ctx         context.Context
	cancel      context.CancelFunc
	evHandler   state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the background processes. A zero interval means mining only
// happens when signaled.
func Run(st *state.State, interval time.Duration, evHandler state.EventHandler) *Worker {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := Worker{
		state:       st,
		shut:        make(chan struct{}),
		startMining: make(chan bool, 1),
		ctx:         ctx,
		cancel:      cancel,
		evHandler:   evHandler,
	}

	// Load the set of operations we need to run.
	operations := []func(){
		w.miningOperations,
	}

	if interval > 0 {
		w.ticker = time.NewTicker(interval)
		operations = append(operations, w.tickerOperations)
	}

	// Register this worker with the state package.
	st.Worker = &w

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for range g {
		<-hasStarted
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutines performing work. A mining operation in
// flight is cancelled.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	if w.ticker != nil {
		w.evHandler("worker: shutdown: stop ticker")
		w.ticker.Stop()
	}

	w.evHandler("worker: shutdown: signal cancel mining")
	w.cancel()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If there is already a signal
// pending in the channel, just return since a mining operation will start.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
		w.evHandler("worker: SignalStartMining: mining signaled")
	default:
	}
}

// =============================================================================

// tickerOperations signals a mining operation on every tick.
func (w *Worker) tickerOperations() {
	w.evHandler("worker: tickerOperations: G started")
	defer w.evHandler("worker: tickerOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.SignalStartMining()
			}
		case <-w.shut:
			w.evHandler("worker: tickerOperations: received shut signal")
			return
		}
	}
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
