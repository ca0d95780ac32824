package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/powledger/ledger/app/services/node/handlers"
	"github.com/powledger/ledger/business/web/errs"
	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/genesis"
	"github.com/powledger/ledger/foundation/blockchain/state"
	"github.com/powledger/ledger/foundation/blockchain/storage/memory"
	"github.com/powledger/ledger/foundation/blockchain/wallet"
	"github.com/powledger/ledger/foundation/events"
	"github.com/powledger/ledger/foundation/nameservice"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	minerHexKey = "8dc79feefd3b86e2f9991def0e5ccd9a5128e104682407b308594bc1032ac7f0"
	otherHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
)

// NodeTests holds methods for each node subtest. This type allows passing
// dependencies for tests while still providing a convenient syntax when
// subtests are registered.
type NodeTests struct {
	app   http.Handler
	miner *wallet.Wallet
	other *wallet.Wallet
}

func Test_Node(t *testing.T) {
	miner, err := wallet.FromHex(minerHexKey)
	if err != nil {
		t.Fatalf("Should be able to load the miner key: %v", err)
	}

	other, err := wallet.FromHex(otherHexKey)
	if err != nil {
		t.Fatalf("Should be able to load the other key: %v", err)
	}

	storage, err := memory.New()
	if err != nil {
		t.Fatalf("Should be able to construct the storage: %v", err)
	}

	st, err := state.New(state.Config{
		HostID:  miner.Account(),
		Genesis: genesis.Default(),
		Storage: storage,
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %v", err)
	}

	ns, err := nameservice.New(t.TempDir())
	if err != nil {
		t.Fatalf("Should be able to construct the name service: %v", err)
	}

	tests := NodeTests{
		app: handlers.PublicMux(handlers.MuxConfig{
			Log:   zap.NewNop().Sugar(),
			State: st,
			NS:    ns,
			Evts:  events.New(),
		}),
		miner: miner,
		other: other,
	}

	t.Run("health", tests.health)
	t.Run("submitMineBalance", tests.submitMineBalance)
	t.Run("rejections", tests.rejections)
	t.Run("blocks", tests.blocks)
}

// health validates the root route answers.
func (nt *NodeTests) health(t *testing.T) {
	w := nt.do(t, http.MethodGet, "/", nil)

	t.Log("Given the need to check the node is up.")
	{
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the response : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 200 for the response.", success)
	}
}

// submitMineBalance runs a transfer through submission and mining.
func (nt *NodeTests) submitMineBalance(t *testing.T) {
	t.Log("Given the need to move value through the api.")
	{
		w := nt.do(t, http.MethodPost, "/v1/tx/submit", nt.signed(t, nt.miner, nt.other, 10))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould receive a status code of 400 without funds : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 400 without funds.", success)

		w = nt.do(t, http.MethodPost, "/v1/mine", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for mining : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 200 for mining.", success)

		w = nt.do(t, http.MethodPost, "/v1/tx/submit", nt.signed(t, nt.miner, nt.other, 10))
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200 for the transfer : %v : %s", failed, w.Code, w.Body)
		}
		t.Logf("\t%s\tShould receive a status code of 200 for the transfer.", success)

		var open []map[string]any
		nt.get(t, "/v1/tx/open", &open)
		if len(open) != 1 {
			t.Fatalf("\t%s\tShould see one open transaction, got %d.", failed, len(open))
		}
		t.Logf("\t%s\tShould see one open transaction.", success)

		var chain struct {
			Length           int   `json:"length"`
			OpenTransactions []any `json:"open_transactions"`
		}
		nt.get(t, "/v1/chain", &chain)
		if chain.Length != 2 || len(chain.OpenTransactions) != 1 {
			t.Fatalf("\t%s\tShould see the chain with its open transaction, got %d blocks %d open.", failed, chain.Length, len(chain.OpenTransactions))
		}
		t.Logf("\t%s\tShould see the chain with its open transaction.", success)

		nt.do(t, http.MethodPost, "/v1/mine", nil)

		var bal struct {
			Balance int64 `json:"balance"`
		}
		nt.get(t, "/v1/balance/"+string(nt.miner.Account()), &bal)
		if bal.Balance != 30 {
			t.Fatalf("\t%s\tShould see a balance of 30 for the miner, got %d.", failed, bal.Balance)
		}
		nt.get(t, "/v1/balance/"+string(nt.other.Account()), &bal)
		if bal.Balance != 10 {
			t.Fatalf("\t%s\tShould see a balance of 10 for the recipient, got %d.", failed, bal.Balance)
		}
		t.Logf("\t%s\tShould see the balances after mining.", success)

		var v struct {
			Valid bool `json:"valid"`
		}
		nt.get(t, "/v1/chain/verify", &v)
		if !v.Valid {
			t.Fatalf("\t%s\tShould see a valid chain.", failed)
		}
		t.Logf("\t%s\tShould see a valid chain.", success)
	}
}

// rejections validates the status codes for bad transfers.
func (nt *NodeTests) rejections(t *testing.T) {
	badSig := nt.signed(t, nt.miner, nt.other, 1)
	badSig.Amount = 2

	notAccount := nt.signed(t, nt.miner, nt.other, 1)
	notAccount.Recipient = database.MiningAccountID

	type table struct {
		name   string
		body   any
		status int
	}

	tt := []table{
		{"bad-signature", badSig, http.StatusUnauthorized},
		{"bad-recipient", notAccount, http.StatusBadRequest},
		{"bad-json", "not a transaction", http.StatusBadRequest},
	}

	t.Log("Given the need to reject bad transfers.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				w := nt.do(t, http.MethodPost, "/v1/tx/submit", tst.body)
				if w.Code != tst.status {
					t.Fatalf("\t%s\tTest %d:\tShould receive a status code of %d : %v : %s", failed, testID, tst.status, w.Code, w.Body)
				}
				t.Logf("\t%s\tTest %d:\tShould receive a status code of %d.", success, testID, tst.status)

				var resp errs.Response
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Error == "" {
					t.Fatalf("\t%s\tTest %d:\tShould get back an error document : %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get back an error document.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

// blocks validates the block lookups.
func (nt *NodeTests) blocks(t *testing.T) {
	t.Log("Given the need to look up blocks.")
	{
		var blk struct {
			Index        uint64 `json:"index"`
			Transactions []any  `json:"transactions"`
		}
		nt.get(t, "/v1/blocks/1", &blk)
		if blk.Index != 1 || len(blk.Transactions) != 1 {
			t.Fatalf("\t%s\tShould get back block 1 with its reward, got %+v.", failed, blk)
		}
		t.Logf("\t%s\tShould get back block 1 with its reward.", success)

		if w := nt.do(t, http.MethodGet, "/v1/blocks/99", nil); w.Code != http.StatusNotFound {
			t.Fatalf("\t%s\tShould receive a status code of 404 for a missing block : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 404 for a missing block.", success)

		if w := nt.do(t, http.MethodGet, "/v1/blocks/abc", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould receive a status code of 400 for a bad index : %v", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 400 for a bad index.", success)

		var chain struct {
			Length int `json:"length"`
		}
		nt.get(t, "/v1/chain", &chain)
		if chain.Length != 3 {
			t.Fatalf("\t%s\tShould get back the full chain, got %d blocks.", failed, chain.Length)
		}
		t.Logf("\t%s\tShould get back the full chain.", success)
	}
}

// =============================================================================

func (nt *NodeTests) signed(t *testing.T, from *wallet.Wallet, to *wallet.Wallet, amount uint64) database.TxData {
	tx, err := from.SignTx(to.Account(), amount)
	if err != nil {
		t.Fatalf("Should be able to sign the transfer: %v", err)
	}
	return database.NewTxData(tx)
}

func (nt *NodeTests) do(t *testing.T, method string, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Should be able to marshal the body: %v", err)
		}
	}

	r := httptest.NewRequest(method, url, &buf)
	w := httptest.NewRecorder()
	nt.app.ServeHTTP(w, r)

	return w
}

func (nt *NodeTests) get(t *testing.T, url string, v any) {
	w := nt.do(t, http.MethodGet, url, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Should receive a status code of 200 for %s : %v", url, w.Code)
	}

	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Should be able to unmarshal the response for %s : %v", url, err)
	}
}
