package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	app := setupApp(t)
	username := nextUsername()

	t.Run("register", func(t *testing.T) {
		access, refresh := app.registerUser(t, username, "password123")
		if access == "" || refresh == "" {
			t.Fatal("expected both tokens after registration")
		}
	})

	t.Run("duplicate_username_rejected", func(t *testing.T) {
		body := fmt.Sprintf(`{"username":%q,"email":"other@test.com","password":"password123"}`, username)
		rec := app.request("POST", "/api/v1/auth/register", body, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login", func(t *testing.T) {
		access, _ := app.loginUser(t, username, "password123")
		if access == "" {
			t.Fatal("expected access token after login")
		}
	})

	t.Run("login_wrong_password", func(t *testing.T) {
		body := fmt.Sprintf(`{"username":%q,"password":"wrongpassword"}`, username)
		rec := app.request("POST", "/api/v1/auth/login", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("profile", func(t *testing.T) {
		access, _ := app.loginUser(t, username, "password123")
		rec := app.request("GET", "/api/v1/profile", "", access)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["username"] != username {
			t.Errorf("expected username %s, got %v", username, user["username"])
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"invalid_username_chars", `{"username":"bad name!","email":"a@test.com","password":"password123"}`},
		{"username_too_long", `{"username":"` + strings.Repeat("x", 41) + `","email":"a@test.com","password":"password123"}`},
		{"short_password", `{"username":"validname","email":"a@test.com","password":"short"}`},
		{"bad_email", `{"username":"validname","email":"not-an-email","password":"password123"}`},
		{"missing_username", `{"email":"a@test.com","password":"password123"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/auth/register", c.body, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRefreshFlow(t *testing.T) {
	app := setupApp(t)
	username := nextUsername()
	_, refresh := app.registerUser(t, username, "password123")

	t.Run("exchange_refresh_token", func(t *testing.T) {
		body := fmt.Sprintf(`{"refresh_token":%q}`, refresh)
		rec := app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == nil || result["refresh_token"] == nil {
			t.Error("expected a fresh token pair")
		}
	})

	t.Run("old_token_rejected_after_rotation", func(t *testing.T) {
		// The previous subtest rotated the stored hash, so the original
		// refresh token no longer matches.
		body := fmt.Sprintf(`{"refresh_token":%q}`, refresh)
		rec := app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("refresh_token_rejected_as_access", func(t *testing.T) {
		_, freshRefresh := app.loginUser(t, username, "password123")
		rec := app.request("GET", "/api/v1/profile", "", freshRefresh)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app := setupApp(t)

	paths := []struct{ method, path string }{
		{"GET", "/api/v1/profile"},
		{"GET", "/api/v1/categories"},
		{"POST", "/api/v1/expenses"},
		{"GET", "/api/v1/analytics/summary"},
	}
	for _, p := range paths {
		rec := app.request(p.method, p.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, rec.Code)
		}
	}
}
