// Package screen implements the listing-screen logic shared by the six
// CRUD views: a last-fetched collection snapshot, free-text search,
// pre-write duplicate-name validation, and the write-then-refetch rule.
package screen

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrDuplicateName is returned when another record in the current
// snapshot already carries the same name, compared case-insensitively.
var ErrDuplicateName = errors.New("a record with this name already exists")

// Lister is the read side of a resource client.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Writer is the write side of a resource client.
type Writer interface {
	Create(ctx context.Context, draft any) error
	Update(ctx context.Context, id int, draft any) error
	Delete(ctx context.Context, id int) error
}

type resource[T any] interface {
	Lister[T]
	Writer
}

// Config describes one entity's screen behavior. Name and DraftName are
// both nil for entities without the duplicate-name rule.
type Config[T, D any] struct {
	ID        func(T) int
	Name      func(T) string
	DraftName func(D) string
	Match     func(T, string) bool
}

// Screen is a listing screen over one resource client. The snapshot it
// guards is the last successfully fetched collection; a failed refresh
// never clears it.
type Screen[T, D any] struct {
	res resource[T]
	cfg Config[T, D]

	mu       sync.RWMutex
	snapshot []T
}

func New[T, D any](res resource[T], cfg Config[T, D]) *Screen[T, D] {
	return &Screen[T, D]{res: res, cfg: cfg}
}

// Refresh re-fetches the collection. On failure the previous snapshot
// is left untouched and the error is returned.
func (s *Screen[T, D]) Refresh(ctx context.Context) error {
	items, err := s.res.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = items
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the last-fetched collection.
func (s *Screen[T, D]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// List refreshes and returns the collection filtered by query. When the
// refresh fails the stale snapshot is filtered and returned alongside
// the error, so callers can keep showing the previous data.
func (s *Screen[T, D]) List(ctx context.Context, query string) ([]T, error) {
	err := s.Refresh(ctx)
	return s.filter(query), err
}

func (s *Screen[T, D]) filter(query string) []T {
	all := s.Snapshot()
	query = strings.TrimSpace(query)
	if query == "" || s.cfg.Match == nil {
		return all
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(all))
	for _, item := range all {
		if s.cfg.Match(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Create validates the draft against the snapshot, writes upstream, and
// re-fetches the authoritative list.
func (s *Screen[T, D]) Create(ctx context.Context, draft D) error {
	if err := s.checkDuplicateName(draft, -1); err != nil {
		return err
	}
	if err := s.res.Create(ctx, draft); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Update validates the draft excluding the record being edited, writes
// upstream, and re-fetches.
func (s *Screen[T, D]) Update(ctx context.Context, id int, draft D) error {
	if err := s.checkDuplicateName(draft, id); err != nil {
		return err
	}
	if err := s.res.Update(ctx, id, draft); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Delete removes the record upstream and re-fetches.
func (s *Screen[T, D]) Delete(ctx context.Context, id int) error {
	if err := s.res.Delete(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// checkDuplicateName rejects a draft whose name matches another snapshot
// record case-insensitively. excludeID is the record being edited, or -1
// on create. The check runs against the last-fetched snapshot only; it
// is a UX convenience, not a consistency guarantee.
func (s *Screen[T, D]) checkDuplicateName(draft D, excludeID int) error {
	if s.cfg.Name == nil || s.cfg.DraftName == nil {
		return nil
	}
	name := strings.ToLower(strings.TrimSpace(s.cfg.DraftName(draft)))
	if name == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.snapshot {
		if s.cfg.ID(item) == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(s.cfg.Name(item))) == name {
			return ErrDuplicateName
		}
	}
	return nil
}
