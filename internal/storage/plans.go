package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// InsertPlan inserts a plan template with its days and exercises in one
// transaction.
func (db *DB) InsertPlan(ctx context.Context, plan models.Plan, days []models.PlanDay, exercises []models.PlanExercise) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning plan insert: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO plans (id, name, duration_weeks) VALUES ($1, $2, $3)`,
		plan.ID, plan.Name, plan.DurationWeeks)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	for _, d := range days {
		_, err = tx.Exec(ctx,
			`INSERT INTO plan_days (id, plan_id, day_number, name) VALUES ($1, $2, $3, $4)`,
			d.ID, d.PlanID, d.DayNumber, d.Name)
		if err != nil {
			return fmt.Errorf("inserting plan day %d: %w", d.DayNumber, err)
		}
	}

	for _, pe := range exercises {
		_, err = tx.Exec(ctx,
			`INSERT INTO plan_exercises (id, plan_day_id, exercise_id, position,
			 weight_increment, min_reps, max_reps, base_weight, base_reps, base_sets)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			pe.ID, pe.PlanDayID, pe.ExerciseID, pe.Position,
			pe.Config.WeightIncrement, pe.Config.MinReps, pe.Config.MaxReps,
			pe.Config.BaseWeight, pe.Config.BaseReps, pe.Config.BaseSets)
		if err != nil {
			return fmt.Errorf("inserting plan exercise: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetPlan retrieves a plan by ID.
func (db *DB) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var p models.Plan
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, duration_weeks FROM plans WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.DurationWeeks)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying plan: %w", err), "plan")
	}
	return &p, nil
}

// GetPlanDays retrieves a plan's days ordered by day number.
func (db *DB) GetPlanDays(ctx context.Context, planID uuid.UUID) ([]models.PlanDay, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_id, day_number, name FROM plan_days
		 WHERE plan_id = $1 ORDER BY day_number ASC`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying plan days: %w", err)
	}
	defer rows.Close()

	var result []models.PlanDay
	for rows.Next() {
		var d models.PlanDay
		if err := rows.Scan(&d.ID, &d.PlanID, &d.DayNumber, &d.Name); err != nil {
			return nil, fmt.Errorf("scanning plan day: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// GetPlanExercises retrieves one day's exercises ordered by position.
func (db *DB) GetPlanExercises(ctx context.Context, planDayID uuid.UUID) ([]models.PlanExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, plan_day_id, exercise_id, position,
		        weight_increment, min_reps, max_reps, base_weight, base_reps, base_sets
		 FROM plan_exercises
		 WHERE plan_day_id = $1 ORDER BY position ASC`, planDayID)
	if err != nil {
		return nil, fmt.Errorf("querying plan exercises: %w", err)
	}
	defer rows.Close()

	var result []models.PlanExercise
	for rows.Next() {
		var pe models.PlanExercise
		if err := rows.Scan(&pe.ID, &pe.PlanDayID, &pe.ExerciseID, &pe.Position,
			&pe.Config.WeightIncrement, &pe.Config.MinReps, &pe.Config.MaxReps,
			&pe.Config.BaseWeight, &pe.Config.BaseReps, &pe.Config.BaseSets); err != nil {
			return nil, fmt.Errorf("scanning plan exercise: %w", err)
		}
		result = append(result, pe)
	}
	return result, rows.Err()
}

// GetPlanExercise retrieves one plan exercise (the engine's config source)
// by ID.
func (db *DB) GetPlanExercise(ctx context.Context, id uuid.UUID) (*models.PlanExercise, error) {
	var pe models.PlanExercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, plan_day_id, exercise_id, position,
		        weight_increment, min_reps, max_reps, base_weight, base_reps, base_sets
		 FROM plan_exercises WHERE id = $1`, id).
		Scan(&pe.ID, &pe.PlanDayID, &pe.ExerciseID, &pe.Position,
			&pe.Config.WeightIncrement, &pe.Config.MinReps, &pe.Config.MaxReps,
			&pe.Config.BaseWeight, &pe.Config.BaseReps, &pe.Config.BaseSets)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying plan exercise: %w", err), "plan exercise")
	}
	return &pe, nil
}
