package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// GetWorkout retrieves a single workout by ID.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`SELECT id, mesocycle_id, plan_day_id, week_number, status, scheduled_date, completed_at
		 FROM workouts WHERE id = $1`, id).
		Scan(&w.ID, &w.MesocycleID, &w.PlanDayID, &w.WeekNumber, &w.Status, &w.ScheduledDate, &w.CompletedAt)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying workout: %w", err), "workout")
	}
	return &w, nil
}

// QueryWorkoutsForWeek retrieves one week's workouts for a mesocycle,
// ordered by scheduled date.
func (db *DB) QueryWorkoutsForWeek(ctx context.Context, mesocycleID uuid.UUID, weekNumber int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, mesocycle_id, plan_day_id, week_number, status, scheduled_date, completed_at
		 FROM workouts
		 WHERE mesocycle_id = $1 AND week_number = $2
		 ORDER BY scheduled_date ASC`, mesocycleID, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("querying workouts for week: %w", err)
	}
	defer rows.Close()

	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.MesocycleID, &w.PlanDayID, &w.WeekNumber,
			&w.Status, &w.ScheduledDate, &w.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// FindWorkout retrieves the workout for a (mesocycle, plan day, week)
// triple, the unit the performance aggregator reduces over.
func (db *DB) FindWorkout(ctx context.Context, mesocycleID, planDayID uuid.UUID, weekNumber int) (*models.Workout, error) {
	var w models.Workout
	err := db.Pool.QueryRow(ctx,
		`SELECT id, mesocycle_id, plan_day_id, week_number, status, scheduled_date, completed_at
		 FROM workouts
		 WHERE mesocycle_id = $1 AND plan_day_id = $2 AND week_number = $3`,
		mesocycleID, planDayID, weekNumber).
		Scan(&w.ID, &w.MesocycleID, &w.PlanDayID, &w.WeekNumber, &w.Status, &w.ScheduledDate, &w.CompletedAt)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying workout by week/day: %w", err), "workout")
	}
	return &w, nil
}

// UpdateWorkoutStatus persists a workout's derived status. completedAt is
// stored when the workout transitions to completed and cleared otherwise
// (an unlogged set can reopen a completed workout).
func (db *DB) UpdateWorkoutStatus(ctx context.Context, id uuid.UUID, status models.WorkoutStatus, completedAt *time.Time) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workouts SET status = $1, completed_at = $2 WHERE id = $3`,
		status, completedAt, id)
	if err != nil {
		return fmt.Errorf("updating workout status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundRow("workout")
	}
	return nil
}
