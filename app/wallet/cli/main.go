// This program provides a wallet for the ledger node.
package main

import "github.com/powledger/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
