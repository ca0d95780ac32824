// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/powledger/ledger/business/sys/validate"
	"github.com/powledger/ledger/business/web/errs"
	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/state"
	"github.com/powledger/ledger/foundation/events"
	"github.com/powledger/ledger/foundation/nameservice"
	"github.com/powledger/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Health reports the node is up.
func (h Handlers) Health(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := struct {
		Status string `json:"status"`
	}{
		Status: "ok",
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// Chain returns the full chain and the open transactions in their persisted
// form, both taken at the same point in time.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, open := h.State.RetrieveSnapshot()

	resp := chain{
		Length:           len(blocks),
		Blockchain:       make([]database.BlockData, len(blocks)),
		OpenTransactions: make([]database.TxData, len(open)),
	}
	for i, b := range blocks {
		resp.Blockchain[i] = database.NewBlockData(b)
	}
	for i, tx := range open {
		resp.OpenTransactions[i] = database.NewTxData(tx)
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// VerifyChain reports whether the chain passes verification.
func (h Handlers) VerifyChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var resp verify

	switch err := h.State.ValidateChain(); err {
	case nil:
		resp.Valid = true
	default:
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Block returns the block for the specified index or the latest block.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index := state.QueryLatest

	if param := web.Param(r, "index"); param != "latest" {
		num, err := strconv.ParseUint(param, 10, 64)
		if err != nil {
			return errs.NewTrusted(fmt.Errorf("invalid block index %q", param), http.StatusBadRequest)
		}
		index = num
	}

	blk, err := h.State.QueryBlock(index)
	if err != nil {
		return errs.FromLedger(err)
	}

	return web.Respond(ctx, w, toBlock(h.NS, blk), http.StatusOK)
}

// BlocksByAccount returns the blocks holding a transaction for the account.
// All blocks are returned when no account is provided.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := database.AccountID(web.Param(r, "account"))

	blocks := h.State.QueryBlocksByAccount(account)

	return web.Respond(ctx, w, toBlocks(h.NS, blocks), http.StatusOK)
}

// OpenTransactions returns the set of transactions waiting to be mined.
func (h Handlers) OpenTransactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	open := h.State.RetrieveOpenTransactions()

	if account := database.AccountID(web.Param(r, "account")); account != "" {
		open = h.State.QueryOpenByAccount(account)
	}

	return web.Respond(ctx, w, toTxs(h.NS, open), http.StatusOK)
}

// SubmitTransaction adds a signed transfer to the open transactions.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var st submitTx
	if err := web.Decode(r, &st); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit tx", "traceid", v.TraceID, "sender", h.NS.Lookup(st.Sender), "recipient", h.NS.Lookup(st.Recipient), "amount", st.Amount)

	if err := h.State.SubmitTransaction(st.toTxData()); err != nil {
		return errs.FromLedger(err)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine seals the open transactions into a new block. The search for a proof
// stops if the client goes away.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blk, err := h.State.MineBlock(ctx)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrInvalidSignature):
			return errs.NewTrusted(err, http.StatusConflict)
		case ctx.Err() != nil:
			return errs.NewTrusted(err, http.StatusRequestTimeout)
		}
		return err
	}

	return web.Respond(ctx, w, toBlock(h.NS, blk), http.StatusOK)
}

// Balance returns the balance for the specified account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := database.AccountID(web.Param(r, "account"))
	if !account.IsAccountID() && !account.IsMining() {
		return errs.NewTrusted(fmt.Errorf("invalid account %q", account), http.StatusBadRequest)
	}

	resp := balance{
		Account: account,
		Name:    h.NS.Lookup(account),
		Balance: h.State.Balance(account),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer func() {
		if dropped, err := h.Evts.Release(v.TraceID); err == nil && dropped > 0 {
			h.Log.Infow("events", "traceid", v.TraceID, "dropped", dropped)
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}
