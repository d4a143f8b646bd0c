package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"-- +goose StatementBegin",
		"CREATE TABLE IF NOT EXISTS bom_items",
		"REFERENCES assets(id) ON DELETE CASCADE",
		"REFERENCES bom_items(id) ON DELETE CASCADE",
		"CHECK (item_type != 'Bulk' OR serial_number IS NULL)",
		"CREATE TABLE IF NOT EXISTS asset_history",
		"CHECK (role IN ('admin','manager','editor','viewer'))",
		"DROP TABLE IF EXISTS bom_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSchemaIsDefinedExactlyOnce(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}

	var defining []string
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			t.Fatalf("read migration file %s: %v", m, err)
		}
		if strings.Contains(string(data), "CREATE TABLE IF NOT EXISTS bom_items") {
			defining = append(defining, m)
		}
	}
	if len(defining) != 1 {
		t.Fatalf("expected exactly one migration to define the schema, got %v", defining)
	}
}
