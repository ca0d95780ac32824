package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/powledger/ledger/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new key pair",
	RunE:  generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) error {
	path := getPrivateKeyPath()

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("key file %q already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	w, err := wallet.Generate()
	if err != nil {
		return err
	}

	if err := w.Save(path); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), w.Account())
	return nil
}
