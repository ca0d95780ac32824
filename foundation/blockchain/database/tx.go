package database

import (
	"fmt"

	"github.com/powledger/ledger/foundation/blockchain/signature"
)

// TxKind separates user transfers from the synthetic mining reward.
type TxKind int

// Set of transaction kinds.
const (
	KindTransfer TxKind = iota
	KindReward
)

// String implements the fmt.Stringer interface.
func (k TxKind) String() string {
	switch k {
	case KindReward:
		return "reward"
	default:
		return "transfer"
	}
}

// =============================================================================

// CanonicalTx is the representation of a transaction that is hashed and
// signed. The field order is the canonical order and the signature is left
// out on purpose.
type CanonicalTx struct {
	Sender    AccountID `json:"sender"`
	Recipient AccountID `json:"recipient"`
	Amount    uint64    `json:"amount"`
}

// =============================================================================

// Tx is a signed transfer of value between two parties, or the reward paid
// to the hosting node for mining a block. A Tx can't be changed after it is
// constructed.
type Tx struct {
	kind      TxKind
	sender    AccountID
	recipient AccountID
	amount    uint64
	signature []byte
}

// NewTransfer constructs a transfer transaction.
func NewTransfer(sender AccountID, recipient AccountID, sig []byte, amount uint64) Tx {
	return Tx{
		kind:      KindTransfer,
		sender:    sender,
		recipient: recipient,
		amount:    amount,
		signature: append([]byte(nil), sig...),
	}
}

// NewReward constructs the reward transaction for the specified account.
func NewReward(recipient AccountID, amount uint64) Tx {
	return Tx{
		kind:      KindReward,
		sender:    MiningAccountID,
		recipient: recipient,
		amount:    amount,
	}
}

// Kind returns the kind of transaction.
func (tx Tx) Kind() TxKind { return tx.kind }

// IsReward reports whether this is a mining reward.
func (tx Tx) IsReward() bool { return tx.kind == KindReward }

// Sender returns the account sending the value.
func (tx Tx) Sender() AccountID { return tx.sender }

// Recipient returns the account receiving the value.
func (tx Tx) Recipient() AccountID { return tx.recipient }

// Amount returns the value being transferred.
func (tx Tx) Amount() uint64 { return tx.amount }

// Signature returns a copy of the signature bytes.
func (tx Tx) Signature() []byte {
	return append([]byte(nil), tx.signature...)
}

// Canonical returns the form of the transaction used for hashing and signing.
func (tx Tx) Canonical() CanonicalTx {
	return CanonicalTx{
		Sender:    tx.sender,
		Recipient: tx.recipient,
		Amount:    tx.amount,
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s->%s:%d", tx.kind, short(tx.sender), short(tx.recipient), tx.amount)
}

// VerifyTx checks the signature of a transfer against the public key embedded
// in the sender. Reward transactions carry no signature and always pass.
func VerifyTx(tx Tx) bool {
	if tx.kind == KindReward {
		return true
	}

	if tx.sender.IsMining() {
		return false
	}

	return signature.Verify(tx.Canonical(), string(tx.sender), tx.signature)
}

// =============================================================================

// TxData represents what a transaction looks like on disk and over the wire.
type TxData struct {
	Sender    AccountID `json:"sender" validate:"required"`
	Recipient AccountID `json:"recipient" validate:"required"`
	Amount    uint64    `json:"amount"`
	Signature string    `json:"signature"`
}

// NewTxData constructs the value to serialize.
func NewTxData(tx Tx) TxData {
	return TxData{
		Sender:    tx.sender,
		Recipient: tx.recipient,
		Amount:    tx.amount,
		Signature: signature.SignatureString(tx.signature),
	}
}

// ToTx converts a TxData into a Tx. An unsigned transaction from the mining
// account is read back as a reward.
func ToTx(data TxData) (Tx, error) {
	sig, err := signature.FromSignatureString(data.Signature)
	if err != nil {
		return Tx{}, fmt.Errorf("decoding signature: %w", err)
	}

	if data.Sender.IsMining() && len(sig) == 0 {
		return NewReward(data.Recipient, data.Amount), nil
	}

	return NewTransfer(data.Sender, data.Recipient, sig, data.Amount), nil
}

// =============================================================================

// canonicalTxs returns the canonical forms for the set of transactions.
func canonicalTxs(txs []Tx) []CanonicalTx {
	out := make([]CanonicalTx, len(txs))
	for i, tx := range txs {
		out[i] = tx.Canonical()
	}
	return out
}

// short trims long account ids for log output.
func short(a AccountID) string {
	if len(a) <= 12 {
		return string(a)
	}
	return string(a[:10]) + ".."
}
