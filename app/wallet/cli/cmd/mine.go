package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the open transactions.",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	var resp struct {
		Index        uint64 `json:"index"`
		Hash         string `json:"hash"`
		Proof        uint64 `json:"proof"`
		Transactions []any  `json:"transactions"`
	}
	if err := call(http.MethodPost, "/v1/mine", nil, &resp); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "block[%d] hash[%s] proof[%d] txs[%d]\n", resp.Index, resp.Hash, resp.Proof, len(resp.Transactions))
	return nil
}
