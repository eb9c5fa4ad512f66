package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/kv"
	"github.com/claude/liftlog/internal/models"

	"github.com/go-chi/chi/v5"
)

type exerciseResponse struct {
	models.Exercise
	IsFavorite bool `json:"isFavorite"`
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list := catalog.All()
	if cat := q.Get("category"); cat != "" {
		list = catalog.ByCategory(models.Category(cat))
	}
	list = catalog.ByMuscleGroup(list, q.Get("muscle"))
	list = catalog.Search(list, q.Get("q"))
	if fav, _ := strconv.ParseBool(q.Get("favorites")); fav {
		list = catalog.OnlyIDs(list, s.app.Favorites.List(r.Context()))
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, exerciseResponse{
		Exercise:   e,
		IsFavorite: s.app.Favorites.IsFavorite(r.Context(), id),
	})
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sets.ListByExercise(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var in models.NewSet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	in.ExerciseID = chi.URLParam(r, "id")

	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	set, err := s.app.Sets.Add(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, "adding set", err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	pr := s.app.Sets.PersonalRecords(r.Context(), chi.URLParam(r, "id"))
	if pr == nil {
		writeError(w, http.StatusNotFound, "no sets logged for exercise")
		return
	}
	writeJSON(w, http.StatusOK, pr)
}

func (s *Server) handleLastSession(w http.ResponseWriter, r *http.Request) {
	includeToday := false
	if v := r.URL.Query().Get("include_today"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "include_today must be a boolean")
			return
		}
		includeToday = b
	}
	writeJSON(w, http.StatusOK, s.app.Sets.LastSessionSets(r.Context(), chi.URLParam(r, "id"), includeToday))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sets.History(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Sets.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, "removing set", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Favorites.List(r.Context()))
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Favorites.Add(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, "adding favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Favorites.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, "removing favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Reset(r.Context()); err != nil {
		s.writeStoreError(w, "resetting data", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError logs a failed write and reports it as a server error.
func (s *Server) writeStoreError(w http.ResponseWriter, action string, err error) {
	s.log.Error(action, "error", err)
	msg := err.Error()
	if errors.Is(err, kv.ErrStorage) {
		msg = "storage unavailable: " + msg
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
