// Package cmd contains the wallet commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/powledger/ledger/business/web/errs"
	"github.com/powledger/ledger/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
	nodeURL     string
)

const (
	keyExtension = ".ecdsa"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private.ecdsa", "Name of the private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:4000", "Url of the node.")
}

var rootCmd = &cobra.Command{
	Use:          "wallet",
	Short:        "Simple wallet for the ledger",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// =============================================================================

func getPrivateKeyPath() string {
	name := accountName
	if !strings.HasSuffix(name, keyExtension) {
		name += keyExtension
	}

	return filepath.Join(accountPath, name)
}

func loadWallet() (*wallet.Wallet, error) {
	return wallet.Load(getPrivateKeyPath())
}

// call performs the request against the node and decodes the response into
// v. Error responses from the node are returned as errors.
func call(method string, path string, body io.Reader, v any) error {
	req, err := http.NewRequest(method, nodeURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("node returned %s", resp.Status)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("node returned %s: %s: %v", resp.Status, er.Error, er.Fields)
		}
		return fmt.Errorf("node returned %s: %s", resp.Status, er.Error)
	}

	if v == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
