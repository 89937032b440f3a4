package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/history"
	"github.com/meltforce/ironcycle/internal/models"
	"github.com/meltforce/ironcycle/internal/service"
)

// DataSource abstracts the data layer for MCP tools. Both *service.Service
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ActiveMesocycle(ctx context.Context) (*models.Mesocycle, error)
	NextWeekTargets(ctx context.Context, mesocycleID uuid.UUID, weekNumber int) ([]models.WeekTargets, error)
	Workout(ctx context.Context, workoutID uuid.UUID) (*models.Workout, []models.WorkoutSet, error)
	ExerciseHistory(ctx context.Context, exerciseID uuid.UUID) (*history.ExerciseHistory, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	LogSet(ctx context.Context, setID uuid.UUID, reps int, weight float64) (*models.WorkoutSet, error)
}

// Compile-time check: *service.Service satisfies DataSource.
var _ DataSource = (*service.Service)(nil)
