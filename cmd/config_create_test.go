package cmd

import (
	"orderenhancer/config"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestSaveDefaultConfigCreatesExampleTemplate(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "create-template.yaml")
	cfgFile = tmpConfig
	viper.Reset()

	if err := saveDefaultConfig("", "auto"); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	text := string(content)
	if !strings.Contains(text, "# orderenhancer configuration") {
		t.Fatalf("expected example header in config file, got:\n%s", text)
	}
	if !strings.Contains(text, "export:") || !strings.Contains(text, "schema: \"excel_export\"") {
		t.Fatalf("expected export schema example in config file, got:\n%s", text)
	}
}

func TestSaveDefaultConfigDoesNotOverwriteExistingFile(t *testing.T) {
	t.Cleanup(func() {
		cfgFile = ""
		viper.Reset()
	})

	tmpConfig := filepath.Join(t.TempDir(), "existing.yaml")
	original := "export:\n  consolidate_orders: false\n  format: \"excel\"\n"
	if err := os.WriteFile(tmpConfig, []byte(original), 0o644); err != nil {
		t.Fatalf("failed writing initial config: %v", err)
	}

	cfgFile = tmpConfig
	viper.Reset()

	if err := saveDefaultConfig("", "auto"); err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}

	content, err := os.ReadFile(tmpConfig)
	if err != nil {
		t.Fatalf("failed reading existing config after create: %v", err)
	}
	if string(content) != original {
		t.Fatalf("expected existing config to remain unchanged")
	}
}

func TestRenderConfigTemplate(t *testing.T) {
	tests := []struct {
		name            string
		schema          string
		consolidate     string
		wantSchema      string
		wantConsolidate bool
		wantErr         bool
	}{
		{name: "defaults", consolidate: "auto", wantSchema: "excel_export", wantConsolidate: true},
		{name: "seeded schema", schema: "admin_grid", consolidate: "off", wantSchema: "admin_grid", wantConsolidate: false},
		{name: "processor schema", schema: "csv_processor", consolidate: "on", wantSchema: "csv_processor", wantConsolidate: true},
		{name: "unknown schema", schema: "marketplace", consolidate: "auto", wantErr: true},
		{name: "invalid consolidate", consolidate: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := renderConfigTemplate(tt.schema, tt.consolidate)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			cfg, err := config.ValidateYAMLContent([]byte(content))
			if err != nil {
				t.Fatalf("rendered template does not validate: %v", err)
			}
			if cfg.Export.Schema != tt.wantSchema || cfg.Export.ConsolidateOrders != tt.wantConsolidate {
				t.Fatalf("unexpected export section %+v", cfg.Export)
			}
		})
	}
}
