package tenant

import (
	"errors"
	"strings"
	"testing"

	"kharcha/internal/database"
	apperrors "kharcha/internal/errors"
	"kharcha/internal/models"
)

func testLocator(t *testing.T) *Locator {
	t.Helper()
	cfg := &database.Config{
		Driver:       database.DriverSQLite,
		DataDir:      t.TempDir(),
		TenantPrefix: "expense_",
	}
	return NewLocator(cfg, nil)
}

func TestParseID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		for _, s := range []string{"alice", "Bob_99", "_", "a", strings.Repeat("x", 40)} {
			id, err := ParseID(s)
			if err != nil {
				t.Errorf("expected %q to parse, got %v", s, err)
			}
			if id.String() != s {
				t.Errorf("expected %q, got %q", s, id.String())
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		cases := []string{
			"",
			strings.Repeat("x", 41),
			"alice smith",
			"alice-smith",
			"alice.smith",
			"alice/../bob",
			"alice;DROP SCHEMA public",
			"ålice",
		}
		for _, s := range cases {
			_, err := ParseID(s)
			if err == nil {
				t.Errorf("expected %q to be rejected", s)
				continue
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) || appErr.Code != "INVALID_INPUT" {
				t.Errorf("expected INVALID_INPUT for %q, got %v", s, err)
			}
		}
	})
}

func TestPartition(t *testing.T) {
	t.Run("provisions_on_first_access", func(t *testing.T) {
		l := testLocator(t)

		db, err := l.Partition("alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The partition schema must be in place immediately.
		if err := db.Create(&models.Category{Name: "Food"}).Error; err != nil {
			t.Fatalf("expected migrated partition, got %v", err)
		}
	})

	t.Run("caches_handle", func(t *testing.T) {
		l := testLocator(t)

		first, err := l.Partition("alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := l.Partition("alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Error("expected the same handle for repeated access")
		}
	})

	t.Run("distinct_ids_are_disjoint", func(t *testing.T) {
		l := testLocator(t)

		aliceDB, err := l.Partition("alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bobDB, err := l.Partition("bob")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := aliceDB.Create(&models.Category{Name: "Food"}).Error; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var count int64
		if err := bobDB.Model(&models.Category{}).Count(&count).Error; err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected bob's partition to be empty, found %d categories", count)
		}
	})

	t.Run("open_failure_is_storage_unavailable", func(t *testing.T) {
		cfg := &database.Config{
			Driver:       database.DriverSQLite,
			DataDir:      "/nonexistent/path/that/cannot/be/created",
			TenantPrefix: "expense_",
		}
		l := NewLocator(cfg, nil)

		_, err := l.Partition("alice")
		if err == nil {
			t.Fatal("expected error for unreachable data directory")
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != "STORAGE_UNAVAILABLE" {
			t.Errorf("expected STORAGE_UNAVAILABLE, got %v", err)
		}
	})
}

func TestName(t *testing.T) {
	l := testLocator(t)
	if got := l.name("alice"); got != "expense_alice" {
		t.Errorf("expected expense_alice, got %s", got)
	}
	if got := l.name("Alice"); got != "expense_Alice" {
		t.Errorf("expected expense_Alice, got %s", got)
	}
}

func TestCreateSchemaStmt(t *testing.T) {
	t.Run("quotes_the_identifier", func(t *testing.T) {
		got := createSchemaStmt("expense_Alice")
		want := `CREATE SCHEMA IF NOT EXISTS "expense_Alice"`
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	// Unquoted identifiers would be folded to lowercase by Postgres,
	// collapsing case-distinct usernames onto one schema.
	t.Run("case_distinct_names_stay_distinct", func(t *testing.T) {
		if createSchemaStmt("expense_Alice") == createSchemaStmt("expense_alice") {
			t.Error("expected distinct statements for case-distinct names")
		}
	})
}
