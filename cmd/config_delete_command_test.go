package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveConfigFile(t *testing.T) {
	t.Run("deletes config and keeps database", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, ".orderenhancer.yaml")
		dbPath := filepath.Join(dir, "orderenhancer.db")
		for _, path := range []string{configPath, dbPath} {
			if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
				t.Fatalf("write %s: %v", path, err)
			}
		}

		if err := removeConfigFile(configPath); err != nil {
			t.Fatalf("remove config: %v", err)
		}
		if _, err := os.Stat(configPath); !os.IsNotExist(err) {
			t.Fatalf("expected config file to be deleted")
		}
		if _, err := os.Stat(dbPath); err != nil {
			t.Fatalf("expected database to be kept: %v", err)
		}
	})

	t.Run("fails without active config", func(t *testing.T) {
		if err := removeConfigFile(""); err == nil {
			t.Fatalf("expected error for empty path")
		}
	})

	t.Run("fails for directory path", func(t *testing.T) {
		if err := removeConfigFile(t.TempDir()); err == nil {
			t.Fatalf("expected error for directory path")
		}
	})
}
