package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "liftlog.db")
	cfg.Timezone = "UTC"
	return cfg
}

// TestResetClearsBothCollections verifies Reset empties the set log and
// favorites while keeping the app usable.
func TestResetClearsBothCollections(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if _, err := a.Sets.Add(ctx, models.NewSet{ExerciseID: "squat", Weight: 100, Reps: 5}); err != nil {
		t.Fatal(err)
	}
	if err := a.Favorites.Add(ctx, "squat"); err != nil {
		t.Fatal(err)
	}

	if err := a.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(a.Sets.List(ctx)); n != 0 {
		t.Errorf("sets after reset = %d", n)
	}
	if n := len(a.Favorites.List(ctx)); n != 0 {
		t.Errorf("favorites after reset = %d", n)
	}

	if _, err := a.Sets.Add(ctx, models.NewSet{ExerciseID: "squat", Weight: 100, Reps: 5}); err != nil {
		t.Fatalf("add after reset: %v", err)
	}
}

// TestDataSurvivesRestart verifies the sqlite backend persists across app instances.
func TestDataSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(ctx, cfg, log)
	if err != nil {
		t.Fatal(err)
	}
	set, err := a.Sets.Add(ctx, models.NewSet{ExerciseID: "deadlift", Weight: 140, Reps: 3, Intensity: models.IntensityFailure})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := New(ctx, cfg, log)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	last := b.Sets.LastSet(ctx, "deadlift")
	if last == nil || last.ID != set.ID || last.Intensity != models.IntensityFailure {
		t.Errorf("LastSet after restart = %+v, want %+v", last, set)
	}
}

// TestSetsUseConfiguredTimezone verifies the set store buckets and reports
// days in the configured zone.
func TestSetsUseConfiguredTimezone(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	if got := a.Sets.Location(); got != time.UTC {
		t.Errorf("Sets.Location() = %v, want UTC", got)
	}
}
