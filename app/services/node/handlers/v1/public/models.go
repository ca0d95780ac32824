package public

import (
	"github.com/powledger/ledger/business/sys/validate"
	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/nameservice"
)

// submitTx is what a wallet posts to have a transfer added to the ledger.
type submitTx struct {
	Sender    database.AccountID `json:"sender" validate:"required,account"`
	Recipient database.AccountID `json:"recipient" validate:"required,account"`
	Amount    uint64             `json:"amount"`
	Signature string             `json:"signature" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (st submitTx) Validate() error {
	return validate.Check(st)
}

func (st submitTx) toTxData() database.TxData {
	return database.TxData{
		Sender:    st.Sender,
		Recipient: st.Recipient,
		Amount:    st.Amount,
		Signature: st.Signature,
	}
}

// =============================================================================

type tx struct {
	Kind          string             `json:"kind"`
	Sender        database.AccountID `json:"sender"`
	SenderName    string             `json:"sender_name"`
	Recipient     database.AccountID `json:"recipient"`
	RecipientName string             `json:"recipient_name"`
	Amount        uint64             `json:"amount"`
	Signature     string             `json:"signature,omitempty"`
}

func toTx(ns *nameservice.NameService, t database.Tx) tx {
	data := database.NewTxData(t)

	return tx{
		Kind:          t.Kind().String(),
		Sender:        t.Sender(),
		SenderName:    ns.Lookup(t.Sender()),
		Recipient:     t.Recipient(),
		RecipientName: ns.Lookup(t.Recipient()),
		Amount:        t.Amount(),
		Signature:     data.Signature,
	}
}

func toTxs(ns *nameservice.NameService, txs []database.Tx) []tx {
	out := make([]tx, len(txs))
	for i, t := range txs {
		out[i] = toTx(ns, t)
	}
	return out
}

type block struct {
	Index        uint64 `json:"index"`
	Hash         string `json:"hash"`
	PreviousHash string `json:"previous_hash"`
	Proof        uint64 `json:"proof"`
	TimeStamp    uint64 `json:"timestamp"`
	Transactions []tx   `json:"transactions"`
}

func toBlock(ns *nameservice.NameService, b database.Block) block {
	return block{
		Index:        b.Index(),
		Hash:         b.Hash(),
		PreviousHash: b.PreviousHash(),
		Proof:        b.Proof(),
		TimeStamp:    b.TimeStamp(),
		Transactions: toTxs(ns, b.Transactions()),
	}
}

func toBlocks(ns *nameservice.NameService, blocks []database.Block) []block {
	out := make([]block, len(blocks))
	for i, b := range blocks {
		out[i] = toBlock(ns, b)
	}
	return out
}

// =============================================================================

type chain struct {
	Length           int                  `json:"length"`
	Blockchain       []database.BlockData `json:"blockchain"`
	OpenTransactions []database.TxData    `json:"open_transactions"`
}

type verify struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type balance struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance int64              `json:"balance"`
}
