package services

import (
	"testing"

	"kharcha/internal/tenant"
	"kharcha/internal/testutil"
)

func mustTenant(t *testing.T, s string) tenant.ID {
	t.Helper()
	id, err := tenant.ParseID(s)
	if err != nil {
		t.Fatalf("failed to parse tenant ID %q: %v", s, err)
	}
	return id
}

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser(mustTenant(t, "alice"), "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected non-empty user ID")
		}
		if user.Username != "alice" {
			t.Errorf("expected username alice, got %s", user.Username)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("email_normalized_to_lowercase", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser(mustTenant(t, "alice"), "Alice@Example.COM", "password123")
		testutil.AssertNoError(t, err)
		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser(mustTenant(t, "alice"), "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser(mustTenant(t, "alice"), "other@example.com", "password123")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser(mustTenant(t, "alice"), "alice@example.com", "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser(mustTenant(t, "bob"), "alice@example.com", "password123")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser(mustTenant(t, "alice"), "", "password123")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created := testutil.CreateTestUser(t, db)

		user, err := svc.GetUserByUsername(created.Username)
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.GetUserByUsername("nobody")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser(mustTenant(t, "alice"), "alice@example.com", "password123")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "password123") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestStoreRefreshTokenHash(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.Username, "abc123"))

		stored, err := svc.GetUserByUsername(user.Username)
		testutil.AssertNoError(t, err)
		if stored.RefreshTokenHash != "abc123" {
			t.Errorf("expected stored hash, got %q", stored.RefreshTokenHash)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.StoreRefreshTokenHash("nobody", "abc123")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
