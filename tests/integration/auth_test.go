package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfileRefresh(t *testing.T) {
	app := setupApp(t)

	// Step 1: Register
	accessToken, refreshToken, userID := app.registerUser(t, "auth@test.com", "Password123!")
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty tokens from registration")
	}
	if userID == "" {
		t.Fatal("expected a user ID")
	}

	// Step 2: Login with same credentials
	loginAccess, loginRefresh := app.loginUser(t, "auth@test.com", "Password123!")
	if loginAccess == "" || loginRefresh == "" {
		t.Fatal("expected non-empty tokens from login")
	}

	// Step 3: Fetch profile with the login access token
	rec := app.request("GET", "/api/v1/auth/me", "", loginAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["email"] != "auth@test.com" {
		t.Errorf("expected email auth@test.com, got %v", user["email"])
	}
	if user["role"] != "reviewer" {
		t.Errorf("expected public registration to yield a reviewer, got %v", user["role"])
	}

	// Step 4: Refresh the token pair
	body := fmt.Sprintf(`{"refresh_token":%q}`, loginRefresh)
	rec = app.request("POST", "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	refreshResult := parseJSON(t, rec)
	newAccess := refreshResult["access_token"].(string)
	if newAccess == "" {
		t.Fatal("expected non-empty new access token after refresh")
	}

	// Step 5: The new access token works
	rec = app.request("GET", "/api/v1/auth/me", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with new token, got %d: %s", rec.Code, rec.Body.String())
	}

	// Note: rotation invalidating the previous refresh token is covered in
	// the handler tests. Tokens minted within the same second carry identical
	// claims and hashes, so asserting it here would be timing-dependent.
}

func TestAuthFlow_RegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "dup@test.com", "Password123!")

	// Try to register again with same email
	rec := app.request("POST", "/api/v1/auth/register",
		`{"email":"dup@test.com","password":"Password123!"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", code)
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "wrong@test.com", "Password123!")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"wrong@test.com","password":"not-the-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS, got %v", code)
	}
}

func TestAuthFlow_DisabledAccountCannotLogin(t *testing.T) {
	app := setupApp(t)

	adminToken, _ := app.registerAdmin(t, "admin@test.com", "Password123!")
	_, _, userID := app.registerUser(t, "disabled@test.com", "Password123!")

	// Admin deactivates the account
	rec := app.request("PUT", "/api/v1/users/"+userID, `{"is_active":false}`, adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivation failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"disabled@test.com","password":"Password123!"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for disabled account, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "ACCOUNT_DISABLED" {
		t.Errorf("expected ACCOUNT_DISABLED, got %v", code)
	}
}

func TestAuthFlow_ProfileWithoutAuth(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthFlow_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	app := setupApp(t)

	_, refreshToken, _ := app.registerUser(t, "tokens@test.com", "Password123!")

	rec := app.request("GET", "/api/v1/auth/me", "", refreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for refresh token on a protected route, got %d", rec.Code)
	}
}
