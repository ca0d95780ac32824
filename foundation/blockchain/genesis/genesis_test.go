package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/powledger/ledger/foundation/blockchain/genesis"
)

func Test_Load(t *testing.T) {
	dir := t.TempDir()

	gen, err := genesis.Load(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("Should fall back to defaults for a missing file: %v", err)
	}
	if gen != genesis.Default() {
		t.Fatalf("Should get back the default settings.")
	}

	path := filepath.Join(dir, "genesis.json")
	if err := os.WriteFile(path, []byte(`{"mining_reward":50,"difficulty":"0"}`), 0600); err != nil {
		t.Fatalf("Should be able to write the genesis file: %v", err)
	}

	gen, err = genesis.Load(path)
	if err != nil {
		t.Fatalf("Should be able to load the genesis file: %v", err)
	}
	if gen.MiningReward != 50 || gen.Difficulty != "0" {
		t.Fatalf("Should get back the settings from the file, got %+v", gen)
	}

	tt := map[string]string{
		"bad-json":    `{"mining_reward":`,
		"upper-hex":   `{"difficulty":"8E"}`,
		"not-hex":     `{"difficulty":"zz"}`,
		"wrong-type":  `{"mining_reward":"twenty"}`,
		"huge-reward": `{"mining_reward":9223372036854775808}`,
	}

	for name, content := range tt {
		f := func(t *testing.T) {
			path := filepath.Join(dir, name+".json")
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatalf("Should be able to write the genesis file: %v", err)
			}

			if _, err := genesis.Load(path); err == nil {
				t.Fatalf("Should fail to load a malformed genesis file.")
			}
		}

		t.Run(name, f)
	}
}
