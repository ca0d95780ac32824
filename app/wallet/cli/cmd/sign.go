package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/powledger/ledger/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	to     string
	amount uint64
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Print a signed transaction without sending it",
	RunE:  signRun,
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVarP(&to, "to", "t", "", "Account to send value to.")
	signCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Value to send.")
	signCmd.MarkFlagRequired("to")
}

func signRun(cmd *cobra.Command, args []string) error {
	data, err := signedTx()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// signedTx builds the transfer from the flags and signs it with the wallet.
func signedTx() (database.TxData, error) {
	w, err := loadWallet()
	if err != nil {
		return database.TxData{}, err
	}

	recipient, err := database.ToAccountID(to)
	if err != nil {
		return database.TxData{}, err
	}

	tx, err := w.SignTx(recipient, amount)
	if err != nil {
		return database.TxData{}, err
	}

	return database.NewTxData(tx), nil
}
