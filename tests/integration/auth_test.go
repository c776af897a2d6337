package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuth_RegisterLoginProfile(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "auth@test.com", "password123")

	// Profile is reachable with the access token
	rec := app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" {
		t.Errorf("expected auth@test.com, got %v", user["email"])
	}

	// Login issues a fresh token pair
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"auth@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	// Wrong password is rejected without leaking which part was wrong
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"auth@test.com","password":"wrong-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_RefreshRotatesTokens(t *testing.T) {
	app := setupApp(t)
	_, refreshToken, _ := app.registerUser(t, "refresh@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	newRefresh := result["refresh_token"].(string)
	if newRefresh == "" {
		t.Fatal("expected a new refresh token")
	}

	// The old refresh token is no longer accepted
	rec = app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale refresh token, got %d", rec.Code)
	}
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/workspaces", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
