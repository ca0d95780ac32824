package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account to send value to.")
	sendCmd.Flags().Uint64VarP(&amount, "amount", "v", 0, "Value to send.")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) error {
	data, err := signedTx()
	if err != nil {
		return err
	}

	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := call(http.MethodPost, "/v1/tx/submit", bytes.NewReader(body), &resp); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Status)
	return nil
}
