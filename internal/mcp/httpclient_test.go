package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workoutlog"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListExercises verifies filters are sent as query params.
func TestListExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("category"); got != "isolation" {
				t.Errorf("category=%q, want isolation", got)
			}
			if got := q.Get("q"); got != "chest" {
				t.Errorf("q=%q, want chest", got)
			}
			if got := q.Get("favorites"); got != "true" {
				t.Errorf("favorites=%q, want true", got)
			}
			writeTestJSON(t, w, []models.Exercise{{ID: "chest-fly", Name: "Chest Fly", Category: models.CategoryIsolation}})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL + "/")
	list, err := client.ListExercises(context.Background(), "isolation", "chest", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "chest-fly" {
		t.Errorf("list = %+v", list)
	}
}

// TestPersonalRecordsNotFound verifies a 404 maps to no records rather than an error.
func TestPersonalRecordsNotFound(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/squat/records": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			writeTestJSON(t, w, map[string]string{"error": "no sets logged for exercise"})
		},
		"/api/v1/exercises/bench-press/records": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.PersonalRecords{MaxWeight: 60, MaxReps: 10, MaxVolume: 500})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	pr, err := client.PersonalRecords(context.Background(), "squat")
	if err != nil || pr != nil {
		t.Errorf("squat records = %+v, %v; want nil, nil", pr, err)
	}
	pr, err = client.PersonalRecords(context.Background(), "bench-press")
	if err != nil {
		t.Fatal(err)
	}
	if pr.MaxVolume != 500 {
		t.Errorf("max volume = %v, want 500", pr.MaxVolume)
	}
}

func TestLastSessionAndHistory(t *testing.T) {
	day := time.Date(2024, 3, 7, 18, 0, 0, 0, time.UTC)
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/deadlift/last-session": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("include_today"); got != "false" {
				t.Errorf("include_today=%q, want false", got)
			}
			writeTestJSON(t, w, []models.WorkoutSet{{ID: "a", ExerciseID: "deadlift", Weight: 140, Reps: 3, Date: day}})
		},
		"/api/v1/exercises/deadlift/history": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, workoutlog.ExerciseHistory{ExerciseID: "deadlift", TotalSets: 1, TotalVolume: 420, LastWorkout: &day})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	sets, err := client.LastSession(context.Background(), "deadlift", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 || !sets[0].Date.Equal(day) {
		t.Errorf("sets = %+v", sets)
	}

	h, err := client.History(context.Background(), "deadlift")
	if err != nil {
		t.Fatal(err)
	}
	if h.TotalVolume != 420 || h.LastWorkout == nil || !h.LastWorkout.Equal(day) {
		t.Errorf("history = %+v", h)
	}
}

// TestLogSet verifies the set is posted as JSON and that invalid sets are
// rejected before any request is made.
func TestLogSet(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/squat/sets": func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			var in models.NewSet
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				t.Fatal(err)
			}
			if in.Weight != 100 || in.Reps != 5 || in.Intensity != models.DefaultIntensity {
				t.Errorf("posted %+v", in)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.WorkoutSet{ID: "new", ExerciseID: "squat", Weight: in.Weight, Reps: in.Reps, Intensity: in.Intensity})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	set, err := client.LogSet(context.Background(), models.NewSet{ExerciseID: "squat", Weight: 100, Reps: 5})
	if err != nil {
		t.Fatal(err)
	}
	if set.ID != "new" {
		t.Errorf("id = %q, want new", set.ID)
	}

	_, err = client.LogSet(context.Background(), models.NewSet{ExerciseID: "squat", Weight: 0, Reps: 5})
	var ve *models.ValidationError
	if !errors.As(err, &ve) || ve.Field != "weight" {
		t.Errorf("err = %v, want weight validation error", err)
	}
}

// TestServerError verifies non-2xx responses surface the API error message.
func TestServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/favorites": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			writeTestJSON(t, w, map[string]string{"error": "storage unavailable"})
		},
	})
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).Favorites(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "storage unavailable"; !strings.Contains(err.Error(), want) {
		t.Errorf("err = %q, want it to mention %q", err, want)
	}
}
