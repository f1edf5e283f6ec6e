// Package client implements the REST resource clients for the upstream
// entity services. Every screen talks to exactly one service through one
// of these clients; there is no shared gateway between the services
// themselves.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cheflink/backoffice/internal/auth"
)

// StatusError is returned when an upstream service answers with a
// non-2xx status.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s: status %d", e.URL, e.Status)
}

// Resource is a generic CRUD client for one entity service.
// The write operations return no body; callers re-fetch the
// authoritative list after a successful write instead of patching
// local state.
type Resource[T any] struct {
	baseURL  string
	listPath string
	http     *http.Client
}

// NewResource creates a Resource rooted at baseURL. listPath is the
// list endpoint, "/bring_all" for every service except payment methods
// which expose "/bringAll".
func NewResource[T any](baseURL, listPath string, httpClient *http.Client) *Resource[T] {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Resource[T]{baseURL: baseURL, listPath: listPath, http: httpClient}
}

// List fetches all entities from the service.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.getJSON(ctx, r.baseURL+r.listPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a new entity draft. POST {base}/create.
func (r *Resource[T]) Create(ctx context.Context, draft any) error {
	return r.write(ctx, http.MethodPost, r.baseURL+"/create", draft)
}

// Update replaces the entity with the given id. PUT {base}/edit/{id}.
func (r *Resource[T]) Update(ctx context.Context, id int, draft any) error {
	return r.write(ctx, http.MethodPut, fmt.Sprintf("%s/edit/%d", r.baseURL, id), draft)
}

// Delete removes the entity with the given id. DELETE {base}/delete/{id}.
func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	return r.write(ctx, http.MethodDelete, fmt.Sprintf("%s/delete/%d", r.baseURL, id), nil)
}

func (r *Resource[T]) getJSON(ctx context.Context, url string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return r.do(req, into)
}

func (r *Resource[T]) write(ctx context.Context, method, url string, body any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return r.do(req, nil)
}

func (r *Resource[T]) do(req *http.Request, into any) error {
	// Forward the caller's bearer token. The services may ignore it,
	// but the gateway always attaches it.
	if token := auth.TokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Status: resp.StatusCode, URL: req.URL.String()}
	}
	if into == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL, err)
	}
	return nil
}
