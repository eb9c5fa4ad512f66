// Package favorites persists the set of exercises the user starred.
package favorites

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/claude/liftlog/internal/kv"
)

// DefaultKey is the storage key of the favorites list.
const DefaultKey = "fitness_app_favorites"

// Store owns the favorites key. Membership changes are serialized per Store.
type Store struct {
	kv  kv.Store
	log *slog.Logger
	key string

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func New(store kv.Store, log *slog.Logger, opts ...Option) *Store {
	s := &Store{kv: store, log: log, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the favorited exercise ids. Read failures are logged and
// reported as no favorites.
func (s *Store) List(ctx context.Context) []string {
	ids, err := s.load(ctx)
	if err != nil {
		s.log.Warn("reading favorites", "key", s.key, "error", err)
		return []string{}
	}
	return ids
}

func (s *Store) IsFavorite(ctx context.Context, exerciseID string) bool {
	return slices.Contains(s.List(ctx), exerciseID)
}

// Add stars an exercise. Adding a favorite twice does not write again.
func (s *Store) Add(ctx context.Context, exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, exerciseID) {
		return nil
	}
	return s.save(ctx, append(ids, exerciseID))
}

// Remove unstars an exercise. Removing an absent id does not write.
func (s *Store) Remove(ctx context.Context, exerciseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == exerciseID })
	if len(kept) == len(ids) {
		return nil
	}
	return s.save(ctx, kept)
}

// Toggle flips the membership of an exercise and returns the new state.
func (s *Store) Toggle(ctx context.Context, exerciseID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if i := slices.Index(ids, exerciseID); i >= 0 {
		return false, s.save(ctx, slices.Delete(ids, i, i+1))
	}
	return true, s.save(ctx, append(ids, exerciseID))
}

// ClearAll deletes the favorites list.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return kv.Wrap("delete", s.key, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) ([]string, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, kv.Wrap("get", s.key, err)
	}
	if !found || len(data) == 0 {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, kv.Wrap("decode", s.key, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Store) save(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return kv.Wrap("encode", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return kv.Wrap("set", s.key, err)
	}
	return nil
}
