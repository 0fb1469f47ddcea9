package flatdb

import (
	"os"
	"path/filepath"
	"testing"
)

// writeDataFile writes content to a fresh file under a temp dir and
// returns its path.
func writeDataFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("write data file: %v", err)
	}

	return path
}

// usersCSV is the canonical test dataset.
const usersCSV = "id,name,email,active\n" +
	"1,John Doe,john@example.com,true\n" +
	"2,Jane Smith,jane@example.com,false\n"

// openUsers loads usersCSV with the default config plus any tweaks.
func openUsers(t *testing.T, tweak func(*Config)) *Store {
	t.Helper()

	cfg := DefaultConfig(writeDataFile(t, usersCSV))
	if tweak != nil {
		tweak(&cfg)
	}

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	return store
}
