package mcp

import (
	"context"
	"errors"
	"math"

	"github.com/claude/liftlog/internal/models"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List catalog exercises. Optionally filter by category, a search term matched against name and muscle groups, or favorites only."),
	mcp.WithString("category", mcp.Description("Exercise category"), mcp.Enum(string(models.CategoryCompound), string(models.CategoryIsolation))),
	mcp.WithString("query", mcp.Description("Case-insensitive search on name or muscle group (e.g. 'chest', 'press')")),
	mcp.WithBoolean("favorites_only", mcp.Description("Only return starred exercises. Defaults to false.")),
)

var toolGetExerciseSets = mcp.NewTool("get_exercise_sets",
	mcp.WithDescription("All logged sets of one exercise, most recent first. Each set has weight (kg), reps, intensity, date and notes."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Catalog id (e.g. bench-press, squat)")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Best weight, best reps and best single-set volume (weight x reps) ever logged for an exercise. Each maximum is independent."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Catalog id")),
)

var toolGetLastSession = mcp.NewTool("get_last_session",
	mcp.WithDescription("Sets of the most recent session of an exercise in the order performed. A session is one calendar day. Today is skipped unless include_today is set."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Catalog id")),
	mcp.WithBoolean("include_today", mcp.Description("Return today's session instead of the previous one. Defaults to false.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Every set of an exercise plus total sets, total volume, average weight, last workout date and personal records."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Catalog id")),
)

var toolListFavorites = mcp.NewTool("list_favorites",
	mcp.WithDescription("Ids of the exercises the user starred."),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Log a new set. Weight and reps must be greater than zero."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Catalog id")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kilograms")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions performed")),
	mcp.WithString("intensity", mcp.Description("Reps left in reserve. Defaults to 1-2-reps."),
		mcp.Enum(string(models.IntensityFailure), string(models.IntensityRIR1To2), string(models.IntensityRIR2To3))),
	mcp.WithString("notes", mcp.Description("Free-text note")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := h.ds.ListExercises(ctx,
		req.GetString("category", ""),
		req.GetString("query", ""),
		req.GetBool("favorites_only", false),
	)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(list)
}

func (h *handlers) getExerciseSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	sets, err := h.ds.ListSets(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise_sets", "error", err, "exercise_id", id)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(sets)
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	pr, err := h.ds.PersonalRecords(ctx, id)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err, "exercise_id", id)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if pr == nil {
		return mcp.NewToolResultText("no sets logged for " + id), nil
	}
	return jsonResult(pr)
}

func (h *handlers) getLastSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	sets, err := h.ds.LastSession(ctx, id, req.GetBool("include_today", false))
	if err != nil {
		h.log.Error("mcp get_last_session", "error", err, "exercise_id", id)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(sets)
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	history, err := h.ds.History(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err, "exercise_id", id)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(history)
}

func (h *handlers) listFavorites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := h.ds.Favorites(ctx)
	if err != nil {
		h.log.Error("mcp list_favorites", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(ids)
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	if math.Abs(reps) > math.MaxInt32 {
		return mcp.NewToolResultError("reps out of range"), nil
	}
	if reps != float64(int(reps)) {
		return mcp.NewToolResultError("reps must be a whole number"), nil
	}

	set, err := h.ds.LogSet(ctx, models.NewSet{
		ExerciseID: id,
		Weight:     weight,
		Reps:       int(reps),
		Intensity:  models.Intensity(req.GetString("intensity", "")),
		Notes:      req.GetString("notes", ""),
	})
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return mcp.NewToolResultError(ve.Error()), nil
		}
		h.log.Error("mcp log_set", "error", err, "exercise_id", id)
		return mcp.NewToolResultError("logging set failed: " + err.Error()), nil
	}
	return jsonResult(set)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
