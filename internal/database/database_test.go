package database

import (
	"path/filepath"
	"testing"

	"budgetbook/internal/config"
)

func TestNewConfig(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		dbc, err := NewConfig(&config.Config{DBDriver: "sqlite", SQLitePath: "budget.db"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dbc.DSN() != "budget.db" {
			t.Errorf("unexpected DSN %q", dbc.DSN())
		}
		if dbc.MigrateURL() != "sqlite3://budget.db" {
			t.Errorf("unexpected migrate URL %q", dbc.MigrateURL())
		}
	})

	t.Run("postgres", func(t *testing.T) {
		dbc, err := NewConfig(&config.Config{
			DBDriver:   "postgres",
			DBHost:     "db",
			DBPort:     "5432",
			DBUser:     "budget",
			DBPassword: "p@ss word",
			DBName:     "ledger",
			DBSSLMode:  "disable",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "host=db port=5432 user=budget password=p@ss word dbname=ledger sslmode=disable"
		if dbc.DSN() != want {
			t.Errorf("expected DSN %q, got %q", want, dbc.DSN())
		}
		if got := dbc.MigrateURL(); got != "postgres://budget:p%40ss%20word@db:5432/ledger?sslmode=disable" {
			t.Errorf("unexpected migrate URL %q", got)
		}
	})

	t.Run("unsupported driver", func(t *testing.T) {
		if _, err := NewConfig(&config.Config{DBDriver: "mysql"}); err == nil {
			t.Fatal("expected an error for mysql")
		}
	})
}

func TestMigrationsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.db")
	dbc, err := NewConfig(&config.Config{DBDriver: DriverSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := NewManager(dbc)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	// Running again is a no-op.
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	version, dirty, err := m.MigrationVersion()
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if version != 1 || dirty {
		t.Errorf("expected clean version 1, got %d dirty=%v", version, dirty)
	}

	for _, table := range []string{"categories", "transactions"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %q", table)
		}
	}

	if err := m.DB().Exec(
		"INSERT INTO categories (category, subcategory) VALUES ('Food', 'Groceries'), ('Food', 'Groceries')",
	).Error; err == nil {
		t.Error("expected the (category, subcategory) pair to be unique")
	}

	if err := m.RollbackMigrations(1); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	if m.DB().Migrator().HasTable("categories") {
		t.Error("expected categories to be dropped after rollback")
	}
	version, _, err = m.MigrationVersion()
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after rollback, got %d", version)
	}
}
