package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postJSON(t *testing.T, env *testEnv, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpointStatusCodes(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin@test.com", "secret123")

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"unknown email", "ghost@test.com", "secret123", http.StatusBadRequest},
		{"wrong password", "admin@test.com", "nope12345", http.StatusUnauthorized},
		{"valid credentials", "admin@test.com", "secret123", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, env, "/api/user-connexion/", "", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestLoginResponseShape(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "shape@test.com", "secret123")

	w := postJSON(t, env, "/api/user-connexion/", "", map[string]string{
		"email":    "shape@test.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		Message            string          `json:"message"`
		Access             string          `json:"access"`
		Refresh            string          `json:"refresh"`
		User               json.RawMessage `json:"user"`
		TimeSinceLastLogin string          `json:"time_since_last_login"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Connexion réussie !" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Access == "" || body.Refresh == "" {
		t.Error("expected both tokens in the response")
	}
	if len(body.User) == 0 {
		t.Error("expected the user object in the response")
	}
	if body.TimeSinceLastLogin == "" {
		t.Error("expected time_since_last_login")
	}
	if bytes.Contains(body.User, []byte("password")) {
		t.Error("user payload must not expose the password hash")
	}
}

func TestLogoutRequiresAuthAndReturns205(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "out@test.com", "secret123")

	login := postJSON(t, env, "/api/user-connexion/", "", map[string]string{
		"email":    "out@test.com",
		"password": "secret123",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d", login.Code)
	}
	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &tokens); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	// No Bearer token: rejected before the body is read.
	if w := postJSON(t, env, "/api/user-deconnexion/", "", map[string]string{"refresh": tokens.Refresh}); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous logout status = %d, want 401", w.Code)
	}

	w := postJSON(t, env, "/api/user-deconnexion/", tokens.Access, map[string]string{"refresh": tokens.Refresh})
	if w.Code != http.StatusResetContent {
		t.Fatalf("logout status = %d, want 205 (body %s)", w.Code, w.Body.String())
	}

	// Blacklisted: a replay fails.
	if w := postJSON(t, env, "/api/user-deconnexion/", env.accessToken(t, user), map[string]string{"refresh": tokens.Refresh}); w.Code != http.StatusBadRequest {
		t.Fatalf("replayed logout status = %d, want 400", w.Code)
	}
}

func TestRefreshEndpointRotates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "rot@test.com", "secret123")

	login := postJSON(t, env, "/api/user-connexion/", "", map[string]string{
		"email":    "rot@test.com",
		"password": "secret123",
	})
	var tokens struct {
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &tokens); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	w := postJSON(t, env, "/api/token/refresh/", "", map[string]string{"refresh": tokens.Refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d (body %s)", w.Code, w.Body.String())
	}
	var body struct {
		Data struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if body.Data.Access == "" || body.Data.Refresh == "" || body.Data.Refresh == tokens.Refresh {
		t.Fatalf("expected a rotated pair, got %+v", body.Data)
	}

	// The spent token is refused.
	if w := postJSON(t, env, "/api/token/refresh/", "", map[string]string{"refresh": tokens.Refresh}); w.Code != http.StatusUnauthorized {
		t.Fatalf("spent refresh status = %d, want 401", w.Code)
	}
}
