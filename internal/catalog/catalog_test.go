package catalog

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func TestAllIsACopy(t *testing.T) {
	list := All()
	if len(list) != 9 {
		t.Fatalf("catalog has %d exercises, want 9", len(list))
	}
	list[0].Name = "changed"
	list[0].MuscleGroups[0] = "changed"

	e, ok := Get(list[0].ID)
	if !ok {
		t.Fatalf("Get(%q) not found", list[0].ID)
	}
	if e.Name == "changed" || e.MuscleGroups[0] == "changed" {
		t.Error("mutating All() result changed the catalog")
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range All() {
		if seen[e.ID] {
			t.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestGet(t *testing.T) {
	e, ok := Get("deadlift")
	if !ok || e.Name != "Deadlift" || e.Category != models.CategoryCompound {
		t.Errorf("Get(deadlift) = %+v, %v", e, ok)
	}
	if _, ok := Get("curl-machine"); ok {
		t.Error("unknown id should not be found")
	}
}

func TestByCategory(t *testing.T) {
	tests := []struct {
		cat  models.Category
		want int
	}{
		{models.CategoryCompound, 6},
		{models.CategoryIsolation, 3},
		{"cardio", 0},
	}
	for _, tt := range tests {
		if got := len(ByCategory(tt.cat)); got != tt.want {
			t.Errorf("ByCategory(%q) = %d exercises, want %d", tt.cat, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank", "  ", nil},
		{"name", "PRESS", []string{"bench-press", "overhead-press", "leg-press"}},
		{"muscle group", "glutes", []string{"squat", "deadlift", "leg-press"}},
		{"no match", "calves", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(All(), tt.query)
			if tt.want == nil {
				if len(got) != 9 {
					t.Errorf("blank query returned %d exercises, want 9", len(got))
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d exercises, want %v", len(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("result[%d] = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestOnlyIDsAndMuscleGroup(t *testing.T) {
	got := OnlyIDs(All(), []string{"chest-fly", "squat", "unknown"})
	if len(got) != 2 || got[0].ID != "squat" || got[1].ID != "chest-fly" {
		t.Errorf("OnlyIDs = %+v", got)
	}
	if n := len(ByMuscleGroup(All(), "chest")); n != 2 {
		t.Errorf("ByMuscleGroup(chest) = %d, want 2", n)
	}
}

func TestByMuscleGroup(t *testing.T) {
	tests := []struct {
		name  string
		list  []models.Exercise
		group string
		want  []string
	}{
		{"exact", All(), "chest", []string{"bench-press", "chest-fly"}},
		{"case insensitive", All(), " Glutes ", []string{"squat", "deadlift", "leg-press"}},
		{"narrows a category", ByCategory(models.CategoryIsolation), "back", []string{"dumbbell-rows"}},
		{"no partial match", All(), "che", nil},
		{"blank keeps input", ByCategory(models.CategoryIsolation), "", []string{"dumbbell-rows", "bicep-curls", "chest-fly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByMuscleGroup(tt.list, tt.group)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d exercises, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("result[%d] = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}
