package models

// Category groups catalog exercises.
type Category string

const (
	CategoryCompound  Category = "compound"
	CategoryIsolation Category = "isolation"
)

// Exercise is a static catalog entry. Entries are never mutated at runtime.
type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	MuscleGroups []string `json:"muscleGroups"`
	Description  string   `json:"description,omitempty"`
}
