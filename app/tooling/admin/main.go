// This program performs administrative tasks against a ledger in storage.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/powledger/ledger/app/tooling/admin/commands"
	"github.com/powledger/ledger/foundation/blockchain/genesis"
	"github.com/powledger/ledger/foundation/blockchain/storage"
	"github.com/powledger/ledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Errorw("startup", "ERROR", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args  conf.Args
		State struct {
			StorageKind string `conf:"default:disk,help:disk|leveldb|bolt"`
			DBPath      string `conf:"default:zblock/ledger/"`
			GenesisPath string `conf:"default:zblock/genesis.json"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "ledger administration",
		},
	}

	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	gen, err := genesis.Load(cfg.State.GenesisPath)
	if err != nil {
		return fmt.Errorf("loading genesis: %w", err)
	}

	strg, err := storage.Open(cfg.State.StorageKind, cfg.State.DBPath)
	if err != nil {
		return err
	}
	defer strg.Close()

	log.Infow("startup", "storage", cfg.State.StorageKind, "path", cfg.State.DBPath)

	return processCommands(cfg.Args, strg, gen)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, strg commands.Loader, gen genesis.Genesis) error {
	switch args.Num(0) {
	case "verify":
		if err := commands.Verify(os.Stdout, strg, gen, args.Num(1)); err != nil {
			return fmt.Errorf("verifying chain: %w", err)
		}

	case "bals":
		if err := commands.Balances(os.Stdout, strg, args.Num(1)); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}

	case "trans":
		if err := commands.Transactions(os.Stdout, strg, args.Num(1)); err != nil {
			return fmt.Errorf("getting transactions: %w", err)
		}

	default:
		fmt.Println("verify [host]: check every block of the chain")
		fmt.Println("bals [account]: print the balances")
		fmt.Println("trans [account]: print the sealed and open transactions")
		fmt.Println("provide a command to get more help.")
		return commands.ErrHelp
	}

	return nil
}
