// Package workoutlog is the durable log of workout sets and the queries
// derived from it. The whole log is persisted as one JSON array under a
// single key of a kv.Store.
package workoutlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/kv"
	"github.com/claude/liftlog/internal/models"

	"github.com/google/uuid"
)

// DefaultKey is the storage key of the set log.
const DefaultKey = "fitness_app_workout_sets"

// Store owns the set log key. Read-modify-write sequences are serialized per
// Store, so concurrent Add and Remove calls on one instance never lose updates
// as long as the kv.Store beneath never serves a value older than its last
// successful write (kv.Cached guarantees this).
// Separate processes sharing a backend are not coordinated.
type Store struct {
	kv    kv.Store
	log   *slog.Logger
	key   string
	now   func() time.Time
	newID func() string
	loc   *time.Location

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock sets the time source used for set dates and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the function that assigns set ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLocation sets the location calendar days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New creates a Store on top of store.
func New(store kv.Store, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    store,
		log:   log,
		key:   DefaultKey,
		now:   time.Now,
		newID: newSetID,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is the zone calendar days are computed in.
func (s *Store) Location() *time.Location { return s.loc }

// newSetID returns a UUIDv7: a millisecond timestamp followed by random bits.
func newSetID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// List returns every logged set in insertion order. Read failures are logged
// and reported as an empty log.
func (s *Store) List(ctx context.Context) []models.WorkoutSet {
	sets, err := s.load(ctx)
	if err != nil {
		s.log.Warn("reading workout sets", "key", s.key, "error", err)
		return []models.WorkoutSet{}
	}
	return sets
}

// Add logs a new set with a fresh id and the current time. The caller is
// expected to have validated in; an empty intensity gets the default.
// Nothing is applied when the log cannot be read or written.
func (s *Store) Add(ctx context.Context, in models.NewSet) (*models.WorkoutSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	intensity := in.Intensity
	if intensity == "" {
		intensity = models.DefaultIntensity
	}
	set := models.WorkoutSet{
		ID:         s.newID(),
		ExerciseID: in.ExerciseID,
		Weight:     in.Weight,
		Reps:       in.Reps,
		Intensity:  intensity,
		Date:       s.now(),
		Notes:      in.Notes,
	}

	if err := s.save(ctx, append(sets, set)); err != nil {
		return nil, err
	}
	s.log.Debug("set logged", "id", set.ID, "exercise_id", set.ExerciseID)
	return &set, nil
}

// Remove deletes the set with the given id. An unknown id is not an error
// and leaves storage untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(sets, func(set models.WorkoutSet) bool { return set.ID == id })
	if len(kept) == len(sets) {
		return nil
	}
	return s.save(ctx, kept)
}

// ClearAll deletes the whole log.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		return kv.Wrap("delete", s.key, err)
	}
	return nil
}

// load reads and decodes the log, propagating storage and decode failures.
func (s *Store) load(ctx context.Context) ([]models.WorkoutSet, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, kv.Wrap("get", s.key, err)
	}
	if !found || len(data) == 0 {
		return []models.WorkoutSet{}, nil
	}

	var sets []models.WorkoutSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, kv.Wrap("decode", s.key, err)
	}
	return migrate(sets), nil
}

func (s *Store) save(ctx context.Context, sets []models.WorkoutSet) error {
	data, err := json.Marshal(sets)
	if err != nil {
		return kv.Wrap("encode", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return kv.Wrap("set", s.key, err)
	}
	return nil
}

// migrate upgrades records written by older versions. A missing or unknown
// intensity becomes DefaultIntensity. The result is never written back on its own.
func migrate(sets []models.WorkoutSet) []models.WorkoutSet {
	out := make([]models.WorkoutSet, len(sets))
	for i, set := range sets {
		if !set.Intensity.Valid() {
			set.Intensity = models.DefaultIntensity
		}
		out[i] = set
	}
	return out
}
