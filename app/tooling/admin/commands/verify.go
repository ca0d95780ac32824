package commands

import (
	"fmt"
	"io"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/powledger/ledger/foundation/blockchain/genesis"
)

// Verify walks the chain and reports the first block that fails. When host is
// provided every reward must be paid to it.
func Verify(w io.Writer, strg Loader, gen genesis.Genesis, host string) error {
	blocks, _, err := load(strg)
	if err != nil {
		return err
	}

	latest := blocks[len(blocks)-1]
	fmt.Fprintf(w, "Blocks: %d  LatestBlockHash: %s\n", len(blocks), latest.Hash())

	if err := database.ValidateChain(blocks, gen.Rules(database.AccountID(host))); err != nil {
		fmt.Fprintf(w, "INVALID: %s\n", err)
		return err
	}

	fmt.Fprintln(w, "VALID")
	return nil
}
