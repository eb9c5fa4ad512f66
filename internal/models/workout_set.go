package models

import (
	"fmt"
	"time"
)

// Intensity is a reps-in-reserve proxy for how close a set went to failure.
type Intensity string

const (
	IntensityFailure Intensity = "failure"
	IntensityRIR1To2 Intensity = "1-2-reps"
	IntensityRIR2To3 Intensity = "2-3-reps"
)

// DefaultIntensity is assigned to sets logged or stored without an intensity.
const DefaultIntensity = IntensityRIR1To2

// Intensities lists the valid intensity values in order of decreasing effort.
var Intensities = []Intensity{IntensityFailure, IntensityRIR1To2, IntensityRIR2To3}

// Valid reports whether i is one of the known intensity values.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityFailure, IntensityRIR1To2, IntensityRIR2To3:
		return true
	}
	return false
}

// ParseIntensity converts a persisted or user-supplied value to an Intensity.
func ParseIntensity(s string) (Intensity, error) {
	i := Intensity(s)
	if !i.Valid() {
		return "", fmt.Errorf("unknown intensity %q", s)
	}
	return i, nil
}

// WorkoutSet is one logged performance of an exercise.
// ID and Date are assigned by the set log on insertion and never change.
type WorkoutSet struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Intensity  Intensity `json:"intensity"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes,omitempty"`
}

// Volume returns weight × reps for the set.
func (s WorkoutSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// NewSet holds the caller-supplied fields of a set about to be logged.
type NewSet struct {
	ExerciseID string    `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Intensity  Intensity `json:"intensity"`
	Notes      string    `json:"notes,omitempty"`
}

// Validate checks the positivity and non-empty invariants of a set.
// An empty intensity is accepted and replaced by DefaultIntensity.
func (n *NewSet) Validate() error {
	if n.ExerciseID == "" {
		return &ValidationError{Field: "exerciseId", Reason: "is required"}
	}
	if !(n.Weight > 0) {
		return &ValidationError{Field: "weight", Reason: "must be greater than 0"}
	}
	if n.Reps <= 0 {
		return &ValidationError{Field: "reps", Reason: "must be greater than 0"}
	}
	if n.Intensity == "" {
		n.Intensity = DefaultIntensity
	}
	if !n.Intensity.Valid() {
		return &ValidationError{Field: "intensity", Reason: fmt.Sprintf("unknown value %q", n.Intensity)}
	}
	return nil
}

// PersonalRecords holds the best observed value of each metric for an exercise.
// The maxima are computed independently and need not come from the same set.
type PersonalRecords struct {
	MaxWeight float64 `json:"maxWeight"`
	MaxReps   int     `json:"maxReps"`
	MaxVolume float64 `json:"maxVolume"`
}
