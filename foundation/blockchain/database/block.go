package database

import (
	"fmt"
	"time"

	"github.com/powledger/ledger/foundation/blockchain/signature"
)

// Block represents a group of transactions sealed with a proof of work and
// linked to the block before it. A Block can't be changed after it is
// constructed.
type Block struct {
	index        uint64
	previousHash string
	transactions []Tx
	proof        uint64
	timeStamp    uint64
}

// NewBlock constructs a block. A zero timestamp is replaced with the
// current time.
func NewBlock(index uint64, previousHash string, txs []Tx, proof uint64, timeStamp uint64) Block {
	if timeStamp == 0 {
		timeStamp = uint64(time.Now().UTC().Unix())
	}

	return Block{
		index:        index,
		previousHash: previousHash,
		transactions: append([]Tx(nil), txs...),
		proof:        proof,
		timeStamp:    timeStamp,
	}
}

// Genesis returns the first block of every chain. It has no transactions,
// no previous hash and a fixed timestamp so every node builds the same one.
func Genesis() Block {
	return Block{}
}

// Index returns the position of the block in the chain.
func (b Block) Index() uint64 { return b.index }

// PreviousHash returns the hash of the block before this one.
func (b Block) PreviousHash() string { return b.previousHash }

// Proof returns the proof of work value for the block.
func (b Block) Proof() uint64 { return b.proof }

// TimeStamp returns the time the block was mined in unix seconds.
func (b Block) TimeStamp() uint64 { return b.timeStamp }

// Transactions returns a copy of the transactions in the block.
func (b Block) Transactions() []Tx {
	return append([]Tx(nil), b.transactions...)
}

// TxCount returns the number of transactions in the block.
func (b Block) TxCount() int {
	return len(b.transactions)
}

// Hash returns the unique hash for the Block. Every field takes part, with
// the keys of each object sorted before marshaling. Two implementations only
// agree on chain hashes if they canonicalize the block exactly this way.
func (b Block) Hash() string {
	txs := make([]map[string]any, len(b.transactions))
	for i, tx := range b.transactions {
		txs[i] = map[string]any{
			"sender":    tx.sender,
			"recipient": tx.recipient,
			"amount":    tx.amount,
		}
	}

	content := map[string]any{
		"index":         b.index,
		"previous_hash": b.previousHash,
		"transactions":  txs,
		"proof":         b.proof,
		"timestamp":     b.timeStamp,
	}

	return signature.Hash(content)
}

// String implements the fmt.Stringer interface for logging.
func (b Block) String() string {
	return fmt.Sprintf("blk[%d]: prev[%.8s]: txs[%d]: proof[%d]", b.index, b.previousHash, len(b.transactions), b.proof)
}

// =============================================================================

// BlockData represents what a block looks like on disk and over the wire.
type BlockData struct {
	Index        uint64   `json:"index"`
	PreviousHash string   `json:"previous_hash"`
	Transactions []TxData `json:"transactions"`
	Proof        uint64   `json:"proof"`
	TimeStamp    uint64   `json:"timestamp"`
}

// NewBlockData constructs the value to serialize to disk or the network.
func NewBlockData(block Block) BlockData {
	txs := make([]TxData, len(block.transactions))
	for i, tx := range block.transactions {
		txs[i] = NewTxData(tx)
	}

	return BlockData{
		Index:        block.index,
		PreviousHash: block.previousHash,
		Transactions: txs,
		Proof:        block.proof,
		TimeStamp:    block.timeStamp,
	}
}

// ToBlock converts a BlockData into a Block. The timestamp is taken as is,
// which keeps the fixed genesis timestamp of zero.
func ToBlock(data BlockData) (Block, error) {
	txs := make([]Tx, len(data.Transactions))
	for i, txData := range data.Transactions {
		tx, err := ToTx(txData)
		if err != nil {
			return Block{}, fmt.Errorf("block[%d]: tx[%d]: %w", data.Index, i, err)
		}
		txs[i] = tx
	}

	block := Block{
		index:        data.Index,
		previousHash: data.PreviousHash,
		transactions: txs,
		proof:        data.Proof,
		timeStamp:    data.TimeStamp,
	}

	return block, nil
}
