package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// uuidArg parses a required tool argument as a UUID.
func uuidArg(req mcp.CallToolRequest, name string) (uuid.UUID, error) {
	s, err := req.RequireString(name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s parameter is required", name)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %s", name, s)
	}
	return id, nil
}

// --- Tool definitions ---

var toolGetActiveMesocycle = mcp.NewTool("get_active_mesocycle",
	mcp.WithDescription("Get the currently active mesocycle (training block). Returns its plan, start date, duration in weeks, and status. At most one mesocycle is active at a time."),
)

var toolGetNextTargets = mcp.NewTool("get_next_targets",
	mcp.WithDescription("Compute weight/reps/sets targets for every exercise in a given week of a mesocycle, derived from the previous week's logged performance. Each target carries a reason: first_week, hit_max_reps, hit_target, hold, regress, or deload."),
	mcp.WithString("mesocycle_id", mcp.Description("Mesocycle UUID. Defaults to the active mesocycle.")),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number, 1-based. The week after the plan's duration is the deload week.")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("Get one workout session with all its sets: per-set target and actual weight/reps and status (pending, completed, skipped)."),
	mcp.WithString("workout_id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Get an exercise's full history across all mesocycles: per-session sets with the best set highlighted, plus the all-time personal record (heaviest completed set, earliest date on ties)."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID. Use list_exercises to look up ids by name.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all known exercises with their UUIDs."),
)

var toolLogSet = mcp.NewTool("log_set",
	mcp.WithDescription("Record the actual reps and weight for a pending set. Completing the last untouched set of a workout marks the whole session completed."),
	mcp.WithString("set_id", mcp.Required(), mcp.Description("Workout set UUID")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps performed (whole number, 0 allowed for a failed set)")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight used (0 allowed for bodyweight work)")),
)

// --- Tool handlers ---

func (h *handlers) getActiveMesocycle(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meso, err := h.ds.ActiveMesocycle(ctx)
	if err != nil {
		h.log.Error("mcp get_active_mesocycle", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(meso)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getNextTargets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}

	var mesoID uuid.UUID
	if s := req.GetString("mesocycle_id", ""); s != "" {
		mesoID, err = uuid.Parse(s)
		if err != nil {
			return mcp.NewToolResultError("mesocycle_id is not a valid UUID: " + s), nil
		}
	} else {
		meso, err := h.ds.ActiveMesocycle(ctx)
		if err != nil {
			h.log.Error("mcp get_next_targets active lookup", "error", err)
			return mcp.NewToolResultError("no active mesocycle: " + err.Error()), nil
		}
		mesoID = meso.ID
	}

	targets, err := h.ds.NextWeekTargets(ctx, mesoID, week)
	if err != nil {
		h.log.Error("mcp get_next_targets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(targets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := uuidArg(req, "workout_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	workout, sets, err := h.ds.Workout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout": workout,
		"sets":    sets,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := uuidArg(req, "exercise_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hist, err := h.ds.ExerciseHistory(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if hist == nil {
		return mcp.NewToolResultError("exercise not found: " + id.String()), nil
	}

	result, err := mcp.NewToolResultJSON(hist)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := uuidArg(req, "set_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required and must be a whole number"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}

	set, err := h.ds.LogSet(ctx, id, reps, weight)
	if err != nil {
		h.log.Error("mcp log_set", "error", err)
		return mcp.NewToolResultError("log failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(set)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
