package workoutlog

import (
	"context"
	"slices"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ExerciseHistory summarizes every set logged for one exercise.
type ExerciseHistory struct {
	ExerciseID      string                  `json:"exerciseId"`
	Sets            []models.WorkoutSet     `json:"sets"`
	TotalSets       int                     `json:"totalSets"`
	TotalVolume     float64                 `json:"totalVolume"`
	AvgWeight       float64                 `json:"avgWeight"`
	LastWorkout     *time.Time              `json:"lastWorkout,omitempty"`
	PersonalRecords *models.PersonalRecords `json:"personalRecords,omitempty"`
}

// ListByExercise returns the sets of one exercise, most recent first.
// Sets with equal dates keep their insertion order.
func (s *Store) ListByExercise(ctx context.Context, exerciseID string) []models.WorkoutSet {
	sets := slices.DeleteFunc(s.List(ctx), func(set models.WorkoutSet) bool {
		return set.ExerciseID != exerciseID
	})
	slices.SortStableFunc(sets, func(a, b models.WorkoutSet) int {
		return b.Date.Compare(a.Date)
	})
	return sets
}

// PersonalRecords returns the best weight, reps and volume logged for an
// exercise, or nil when it has no sets.
func (s *Store) PersonalRecords(ctx context.Context, exerciseID string) *models.PersonalRecords {
	return personalRecords(s.ListByExercise(ctx, exerciseID))
}

// LastSet returns the most recent set of an exercise, or nil.
func (s *Store) LastSet(ctx context.Context, exerciseID string) *models.WorkoutSet {
	sets := s.ListByExercise(ctx, exerciseID)
	if len(sets) == 0 {
		return nil
	}
	return &sets[0]
}

// LastSessionSets returns the sets of the most recent session of an exercise
// in the order they were performed. A session is every set on one calendar
// day in the store's location. Unless includeToday is set, today's session
// is skipped and the latest earlier day is returned.
func (s *Store) LastSessionSets(ctx context.Context, exerciseID string, includeToday bool) []models.WorkoutSet {
	sets := s.ListByExercise(ctx, exerciseID)
	today := s.day(s.now())

	target := today
	if !includeToday {
		found := false
		for _, set := range sets {
			if d := s.day(set.Date); d != today {
				target, found = d, true
				break
			}
		}
		if !found {
			return []models.WorkoutSet{}
		}
	}

	session := make([]models.WorkoutSet, 0, len(sets))
	for _, set := range sets {
		if s.day(set.Date) == target {
			session = append(session, set)
		}
	}
	slices.SortStableFunc(session, func(a, b models.WorkoutSet) int {
		return a.Date.Compare(b.Date)
	})
	return session
}

// History returns the sets of an exercise together with aggregate stats.
func (s *Store) History(ctx context.Context, exerciseID string) *ExerciseHistory {
	sets := s.ListByExercise(ctx, exerciseID)
	h := &ExerciseHistory{
		ExerciseID:      exerciseID,
		Sets:            sets,
		TotalSets:       len(sets),
		PersonalRecords: personalRecords(sets),
	}
	if len(sets) == 0 {
		return h
	}

	var weight float64
	for _, set := range sets {
		h.TotalVolume += set.Volume()
		weight += set.Weight
	}
	h.AvgWeight = weight / float64(len(sets))
	last := sets[0].Date
	h.LastWorkout = &last
	return h
}

type calendarDay struct {
	year  int
	month time.Month
	day   int
}

func (s *Store) day(t time.Time) calendarDay {
	y, m, d := t.In(s.loc).Date()
	return calendarDay{y, m, d}
}

func personalRecords(sets []models.WorkoutSet) *models.PersonalRecords {
	if len(sets) == 0 {
		return nil
	}
	pr := &models.PersonalRecords{}
	for _, set := range sets {
		pr.MaxWeight = max(pr.MaxWeight, set.Weight)
		pr.MaxReps = max(pr.MaxReps, set.Reps)
		pr.MaxVolume = max(pr.MaxVolume, set.Volume())
	}
	return pr
}
