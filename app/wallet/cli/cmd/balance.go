package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) error {
	w, err := loadWallet()
	if err != nil {
		return err
	}

	var resp struct {
		Account string `json:"account"`
		Name    string `json:"name"`
		Balance int64  `json:"balance"`
	}
	if err := call(http.MethodGet, "/v1/balance/"+string(w.Account()), nil, &resp); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "For Account:", resp.Account)
	fmt.Fprintln(cmd.OutOrStdout(), resp.Balance)
	return nil
}
