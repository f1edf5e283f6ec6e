package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrInvalidCredentials is returned when the auth service rejects a login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginClient proxies logins to the upstream auth service.
type LoginClient struct {
	baseURL string
	http    *http.Client
}

func NewLoginClient(baseURL string, hc *http.Client) *LoginClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &LoginClient{baseURL: baseURL, http: hc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for the auth service's token.
// POST {base}/auth/login.
func (c *LoginClient) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return "", ErrInvalidCredentials
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("auth service: status %d", resp.StatusCode)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}
	if lr.Token == "" {
		return "", errors.New("auth service returned empty token")
	}
	return lr.Token, nil
}
