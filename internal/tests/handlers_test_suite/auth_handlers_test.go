package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/mherrera-dev/refaccionaria/internal/http/handlers"
)

func TestRegisterFirstUser(t *testing.T) {
	r := setup()

	w := registerUser(r, "admin", "secret1", "Admin")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.AuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.User.Usuario != "admin" || resp.User.Nombre != "Admin" {
		t.Errorf("unexpected user payload: %+v", resp.User)
	}
	if sessionCookie(w) == nil {
		t.Error("expected a session cookie to be set")
	}

	cw := doJSON(r, http.MethodGet, "/auth/check-users", nil, nil)
	var check handler.CheckUsersResponse
	if err := json.NewDecoder(cw.Body).Decode(&check); err != nil {
		t.Fatalf("error decoding check-users response: %v", err)
	}
	if !check.HasUsers || check.UserCount != 1 {
		t.Errorf("expected hasUsers=true userCount=1, got %+v", check)
	}
}

func TestRegisterDisabledAfterFirstUser(t *testing.T) {
	r := setup()

	if w := registerUser(r, "admin", "secret1", "Admin"); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for first registration, got %d", w.Code)
	}

	w := registerUser(r, "otro", "secret2", "Otro")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for second registration, got %d", w.Code)
	}
	if resp := decodeMessage(w); resp.Success {
		t.Error("expected success=false")
	}
}

func TestRegisterValidation(t *testing.T) {
	r := setup()

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing usuario", map[string]any{"password": "secret1", "nombre": "Admin"}},
		{"missing password", map[string]any{"usuario": "admin", "nombre": "Admin"}},
		{"missing nombre", map[string]any{"usuario": "admin", "password": "secret1"}},
		{"short password", map[string]any{"usuario": "admin", "password": "abc", "nombre": "Admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/auth/register", tt.payload, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestLoginGenericFailureMessage(t *testing.T) {
	r := setup()
	registerUser(r, "admin", "secret1", "Admin")

	wrongPassword := loginUser(r, "admin", "not-the-password")
	unknownUser := loginUser(r, "nobody", "whatever")

	if wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", wrongPassword.Code)
	}
	if unknownUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", unknownUser.Code)
	}

	// Both failures must be indistinguishable.
	if wrongPassword.Body.String() != unknownUser.Body.String() {
		t.Errorf("expected identical bodies, got %q and %q",
			wrongPassword.Body.String(), unknownUser.Body.String())
	}
}

func TestLoginAndMe(t *testing.T) {
	r := setup()
	registerUser(r, "admin", "secret1", "Admin")

	w := loginUser(r, "admin", "secret1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", w.Code)
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	me := doJSON(r, http.MethodGet, "/auth/me", nil, cookie)
	if me.Code != http.StatusOK {
		t.Fatalf("expected 200 for /auth/me, got %d", me.Code)
	}
	var resp handler.AuthResponse
	if err := json.NewDecoder(me.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.User.Usuario != "admin" {
		t.Errorf("expected usuario 'admin', got %q", resp.User.Usuario)
	}

	anonymous := doJSON(r, http.MethodGet, "/auth/me", nil, nil)
	if anonymous.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", anonymous.Code)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	w := doJSON(r, http.MethodPost, "/auth/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for logout, got %d", w.Code)
	}

	me := doJSON(r, http.MethodGet, "/auth/me", nil, cookie)
	if me.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", me.Code)
	}
}

func TestSessionGateRedirectsBrowsers(t *testing.T) {
	r := setup()

	w := doBrowser(r, http.MethodGet, "/productos", nil)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 for browser request, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login.html" {
		t.Errorf("expected redirect to /login.html, got %q", loc)
	}
}

func TestHomeRedirects(t *testing.T) {
	r := setup()

	// No users yet: send the browser to registration.
	if w := doBrowser(r, http.MethodGet, "/", nil); w.Header().Get("Location") != "/registro.html" {
		t.Errorf("expected redirect to /registro.html, got %q", w.Header().Get("Location"))
	}

	cookie := loginAsAdmin(r)

	// A user exists now, but no session on this request.
	if w := doBrowser(r, http.MethodGet, "/", nil); w.Header().Get("Location") != "/login.html" {
		t.Errorf("expected redirect to /login.html, got %q", w.Header().Get("Location"))
	}

	if w := doBrowser(r, http.MethodGet, "/", cookie); w.Header().Get("Location") != "/dashboard.html" {
		t.Errorf("expected redirect to /dashboard.html, got %q", w.Header().Get("Location"))
	}
}
