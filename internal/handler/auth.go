package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cheflink/backoffice/internal/auth"
)

// Authenticator exchanges credentials for a token. Satisfied by
// *auth.LoginClient.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authClient Authenticator
}

func NewAuthHandler(authClient Authenticator) *AuthHandler {
	return &AuthHandler{authClient: authClient}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login proxies credentials to the auth service and returns its token.
// A rejected login gets a stable inline error message rather than a
// notification; this is the one failure path the UI pins to the form.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	token, err := h.authClient.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		log.Printf("ERROR: login: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "auth service unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
