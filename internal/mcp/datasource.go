package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workoutlog"
)

// DataSource abstracts the data layer for MCP tools. Both Local (stores in
// this process) and HTTPClient (a running liftlog API) satisfy it.
type DataSource interface {
	ListExercises(ctx context.Context, category, query string, favoritesOnly bool) ([]models.Exercise, error)
	ListSets(ctx context.Context, exerciseID string) ([]models.WorkoutSet, error)
	// PersonalRecords returns nil without error when the exercise has no sets.
	PersonalRecords(ctx context.Context, exerciseID string) (*models.PersonalRecords, error)
	LastSession(ctx context.Context, exerciseID string, includeToday bool) ([]models.WorkoutSet, error)
	History(ctx context.Context, exerciseID string) (*workoutlog.ExerciseHistory, error)
	Favorites(ctx context.Context) ([]string, error)
	LogSet(ctx context.Context, in models.NewSet) (*models.WorkoutSet, error)
}

// Local serves tools straight from the stores of an App.
type Local struct {
	app *app.App
}

// Compile-time checks.
var (
	_ DataSource = (*Local)(nil)
	_ DataSource = (*HTTPClient)(nil)
)

func NewLocal(a *app.App) *Local {
	return &Local{app: a}
}

func (l *Local) ListExercises(ctx context.Context, category, query string, favoritesOnly bool) ([]models.Exercise, error) {
	list := catalog.All()
	if category != "" {
		list = catalog.ByCategory(models.Category(category))
	}
	list = catalog.Search(list, query)
	if favoritesOnly {
		list = catalog.OnlyIDs(list, l.app.Favorites.List(ctx))
	}
	return list, nil
}

func (l *Local) ListSets(ctx context.Context, exerciseID string) ([]models.WorkoutSet, error) {
	return l.app.Sets.ListByExercise(ctx, exerciseID), nil
}

func (l *Local) PersonalRecords(ctx context.Context, exerciseID string) (*models.PersonalRecords, error) {
	return l.app.Sets.PersonalRecords(ctx, exerciseID), nil
}

func (l *Local) LastSession(ctx context.Context, exerciseID string, includeToday bool) ([]models.WorkoutSet, error) {
	return l.app.Sets.LastSessionSets(ctx, exerciseID, includeToday), nil
}

func (l *Local) History(ctx context.Context, exerciseID string) (*workoutlog.ExerciseHistory, error) {
	return l.app.Sets.History(ctx, exerciseID), nil
}

func (l *Local) Favorites(ctx context.Context) ([]string, error) {
	return l.app.Favorites.List(ctx), nil
}

func (l *Local) LogSet(ctx context.Context, in models.NewSet) (*models.WorkoutSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return l.app.Sets.Add(ctx, in)
}
