package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cheflink/backoffice/internal/auth"
)

type mockAuthenticator struct {
	token string
	err   error
}

func (m *mockAuthenticator) Login(_ context.Context, email, password string) (string, error) {
	return m.token, m.err
}

func authRouter(a Authenticator) chi.Router {
	r := chi.NewRouter()
	NewAuthHandler(a).RegisterRoutes(r)
	return r
}

func TestLoginSuccess(t *testing.T) {
	r := authRouter(&mockAuthenticator{token: "tok-abc"})
	rec := doRequest(t, r, http.MethodPost, "/auth/login",
		map[string]string{"email": "admin@example.com", "password": "hunter2"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp map[string]string
	decodeResponse(t, rec, &resp)
	if resp["token"] != "tok-abc" {
		t.Errorf("token: got %q", resp["token"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := authRouter(&mockAuthenticator{err: auth.ErrInvalidCredentials})
	rec := doRequest(t, r, http.MethodPost, "/auth/login",
		map[string]string{"email": "admin@example.com", "password": "wrong"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	var resp map[string]string
	decodeResponse(t, rec, &resp)
	if resp["error"] != "invalid credentials" {
		t.Errorf("error: got %q, want stable inline message", resp["error"])
	}
}

func TestLoginMissingFields(t *testing.T) {
	r := authRouter(&mockAuthenticator{token: "tok"})
	cases := []map[string]string{
		{"email": "admin@example.com"},
		{"password": "hunter2"},
		{},
	}
	for _, body := range cases {
		rec := doRequest(t, r, http.MethodPost, "/auth/login", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %v: got %d, want 400", body, rec.Code)
		}
	}
}

func TestLoginMalformedBody(t *testing.T) {
	r := authRouter(&mockAuthenticator{token: "tok"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestLoginAuthServiceDown(t *testing.T) {
	r := authRouter(&mockAuthenticator{err: errors.New("connection refused")})
	rec := doRequest(t, r, http.MethodPost, "/auth/login",
		map[string]string{"email": "admin@example.com", "password": "hunter2"})

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", rec.Code)
	}
}
