package state

import (
	"fmt"
	"math"

	"github.com/powledger/ledger/foundation/blockchain/database"
)

// AddTransaction accepts a signed transfer for inclusion in the next block.
// The sender must hold enough value, counting what it already has pending,
// and the signature must match the sender.
func (s *State) AddTransaction(sender database.AccountID, recipient database.AccountID, sig []byte, amount uint64) error {
	tx := database.NewTransfer(sender, recipient, sig, amount)

	if err := s.addTransaction(tx); err != nil {
		s.evHandler("state: AddTransaction: REJECTED: tx[%s]: %s", tx, err)
		return err
	}

	s.evHandler("state: AddTransaction: ACCEPTED: tx[%s]", tx)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}

// SubmitTransaction accepts a transaction in its wire form.
func (s *State) SubmitTransaction(data database.TxData) error {
	tx, err := database.ToTx(data)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	return s.AddTransaction(tx.Sender(), tx.Recipient(), tx.Signature(), tx.Amount())
}

// =============================================================================

// addTransaction validates the transaction against the current ledger and
// appends it to the open transactions.
func (s *State) addTransaction(tx database.Tx) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if tx.Amount() > math.MaxInt64 {
		return fmt.Errorf("%w: amount %d is too large", ErrInvalidTransaction, tx.Amount())
	}

	if !tx.Recipient().IsAccountID() {
		return fmt.Errorf("%w: recipient %q is not properly formatted", ErrInvalidTransaction, tx.Recipient())
	}

	open := s.mempool.Copy()

	balance := database.Balance(s.chain, open, tx.Sender())
	if balance < int64(tx.Amount()) {
		return fmt.Errorf("%w: balance %d, amount %d", ErrInsufficientFunds, balance, tx.Amount())
	}

	if !database.VerifyTx(tx) {
		return ErrInvalidSignature
	}

	return s.commit(s.chain, append(open, tx))
}
