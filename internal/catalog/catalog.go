// Package catalog holds the built-in exercise list.
package catalog

import (
	"slices"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

var exercises = []models.Exercise{
	{ID: "bench-press", Name: "Bench Press", Category: models.CategoryCompound, MuscleGroups: []string{"chest", "shoulders", "arms"}, Description: "Classic chest exercise with barbell"},
	{ID: "squat", Name: "Squat", Category: models.CategoryCompound, MuscleGroups: []string{"legs", "glutes"}, Description: "Fundamental leg exercise"},
	{ID: "deadlift", Name: "Deadlift", Category: models.CategoryCompound, MuscleGroups: []string{"back", "legs", "glutes"}, Description: "Full body strength exercise"},
	{ID: "overhead-press", Name: "Overhead Press", Category: models.CategoryCompound, MuscleGroups: []string{"shoulders", "arms"}, Description: "Standing shoulder press"},
	{ID: "pull-ups", Name: "Pull-ups", Category: models.CategoryCompound, MuscleGroups: []string{"back", "arms"}, Description: "Bodyweight back exercise"},
	{ID: "dumbbell-rows", Name: "Dumbbell Rows", Category: models.CategoryIsolation, MuscleGroups: []string{"back", "arms"}, Description: "Back isolation with dumbbells"},
	{ID: "bicep-curls", Name: "Bicep Curls", Category: models.CategoryIsolation, MuscleGroups: []string{"arms"}, Description: "Arm isolation exercise"},
	{ID: "leg-press", Name: "Leg Press", Category: models.CategoryCompound, MuscleGroups: []string{"legs", "glutes"}, Description: "Machine-based leg exercise"},
	{ID: "chest-fly", Name: "Chest Fly", Category: models.CategoryIsolation, MuscleGroups: []string{"chest"}, Description: "Chest isolation exercise"},
}

// All returns a copy of the catalog in display order.
func All() []models.Exercise {
	out := make([]models.Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = clone(e)
	}
	return out
}

// Get looks up an exercise by id.
func Get(id string) (models.Exercise, bool) {
	for _, e := range exercises {
		if e.ID == id {
			return clone(e), true
		}
	}
	return models.Exercise{}, false
}

func ByCategory(cat models.Category) []models.Exercise {
	return filter(All(), func(e models.Exercise) bool { return e.Category == cat })
}

// ByMuscleGroup keeps the exercises that train group, compared without case.
// A blank group returns the input unchanged.
func ByMuscleGroup(list []models.Exercise, group string) []models.Exercise {
	group = strings.TrimSpace(group)
	if group == "" {
		return list
	}
	return filter(list, func(e models.Exercise) bool {
		return slices.ContainsFunc(e.MuscleGroups, func(g string) bool { return strings.EqualFold(g, group) })
	})
}

// Search keeps the exercises whose name or any muscle group contains query,
// ignoring case. A blank query returns the input unchanged.
func Search(list []models.Exercise, query string) []models.Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	return filter(list, func(e models.Exercise) bool {
		if strings.Contains(strings.ToLower(e.Name), q) {
			return true
		}
		return slices.ContainsFunc(e.MuscleGroups, func(g string) bool {
			return strings.Contains(strings.ToLower(g), q)
		})
	})
}

// OnlyIDs keeps the exercises whose id is in ids, preserving list order.
func OnlyIDs(list []models.Exercise, ids []string) []models.Exercise {
	return filter(list, func(e models.Exercise) bool { return slices.Contains(ids, e.ID) })
}

func filter(list []models.Exercise, keep func(models.Exercise) bool) []models.Exercise {
	out := make([]models.Exercise, 0, len(list))
	for _, e := range list {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func clone(e models.Exercise) models.Exercise {
	e.MuscleGroups = slices.Clone(e.MuscleGroups)
	return e
}
