package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/lifecycle"
	"github.com/meltforce/ironcycle/internal/models"
)

// ErrActiveMesocycle is returned when creating a mesocycle while another is
// still active. The one-active rule is global and enforced in the database.
var ErrActiveMesocycle = errors.New("an active mesocycle already exists")

// CreateMesocycle generates a full training block from a plan template:
// the mesocycle row plus every week's workouts and sets (weeks 1 through
// duration+1, the last being the deload week), all inside one transaction.
// Sets are created with the plan's base targets; later weeks are rewritten
// by the progression engine as results come in.
func (db *DB) CreateMesocycle(ctx context.Context, planID uuid.UUID, startDate time.Time) (*models.Mesocycle, error) {
	plan, err := db.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	days, err := db.GetPlanDays(ctx, planID)
	if err != nil {
		return nil, err
	}
	dayExercises := make(map[uuid.UUID][]models.PlanExercise, len(days))
	for _, d := range days {
		exs, err := db.GetPlanExercises(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		dayExercises[d.ID] = exs
	}

	meso := models.Mesocycle{
		ID:            uuid.New(),
		PlanID:        plan.ID,
		Status:        models.MesoActive,
		DurationWeeks: plan.DurationWeeks,
		StartDate:     startDate,
		CreatedAt:     time.Now().UTC(),
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning mesocycle create: %w", err)
	}
	defer tx.Rollback(ctx)

	// Check-then-create; the mesocycles_one_active partial unique index
	// backs this up against races.
	var activeExists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM mesocycles WHERE status = 'active')`).Scan(&activeExists)
	if err != nil {
		return nil, fmt.Errorf("checking active mesocycle: %w", err)
	}
	if activeExists {
		return nil, ErrActiveMesocycle
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO mesocycles (id, plan_id, status, duration_weeks, start_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		meso.ID, meso.PlanID, meso.Status, meso.DurationWeeks, meso.StartDate, meso.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting mesocycle: %w", err)
	}

	for week := 1; week <= meso.TotalWeeks(); week++ {
		for _, d := range days {
			workoutID := uuid.New()
			scheduled := startDate.AddDate(0, 0, 7*(week-1)+(d.DayNumber-1))
			_, err = tx.Exec(ctx,
				`INSERT INTO workouts (id, mesocycle_id, plan_day_id, week_number, status, scheduled_date)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				workoutID, meso.ID, d.ID, week, models.WorkoutPending, scheduled)
			if err != nil {
				return nil, fmt.Errorf("inserting workout (week %d, day %d): %w", week, d.DayNumber, err)
			}

			for _, pe := range dayExercises[d.ID] {
				for setNum := 1; setNum <= pe.Config.BaseSets; setNum++ {
					_, err = tx.Exec(ctx,
						`INSERT INTO workout_sets (id, workout_id, exercise_id, plan_exercise_id,
						 set_number, target_reps, target_weight, status)
						 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
						uuid.New(), workoutID, pe.ExerciseID, pe.ID,
						setNum, pe.Config.BaseReps, pe.Config.BaseWeight, models.SetPending)
					if err != nil {
						return nil, fmt.Errorf("inserting workout set: %w", err)
					}
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing mesocycle create: %w", err)
	}
	return &meso, nil
}

// GetMesocycle retrieves a mesocycle by ID.
func (db *DB) GetMesocycle(ctx context.Context, id uuid.UUID) (*models.Mesocycle, error) {
	var m models.Mesocycle
	err := db.Pool.QueryRow(ctx,
		`SELECT id, plan_id, status, duration_weeks, start_date, created_at
		 FROM mesocycles WHERE id = $1`, id).
		Scan(&m.ID, &m.PlanID, &m.Status, &m.DurationWeeks, &m.StartDate, &m.CreatedAt)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying mesocycle: %w", err), "mesocycle")
	}
	return &m, nil
}

// GetActiveMesocycle retrieves the single active mesocycle, or a not-found
// error when none is active.
func (db *DB) GetActiveMesocycle(ctx context.Context) (*models.Mesocycle, error) {
	var m models.Mesocycle
	err := db.Pool.QueryRow(ctx,
		`SELECT id, plan_id, status, duration_weeks, start_date, created_at
		 FROM mesocycles WHERE status = 'active'`).
		Scan(&m.ID, &m.PlanID, &m.Status, &m.DurationWeeks, &m.StartDate, &m.CreatedAt)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying active mesocycle: %w", err), "active mesocycle")
	}
	return &m, nil
}

// SetMesocycleStatus transitions an active mesocycle to completed or
// cancelled. Transitions from terminal states are rejected.
func (db *DB) SetMesocycleStatus(ctx context.Context, id uuid.UUID, status models.MesocycleStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown mesocycle status %q", lifecycle.ErrInvalidValue, status)
	}
	current, err := db.GetMesocycle(ctx, id)
	if err != nil {
		return err
	}
	if current.Status.Terminal() {
		return fmt.Errorf("%w: mesocycle is already %s", lifecycle.ErrInvalidTransition, current.Status)
	}

	_, err = db.Pool.Exec(ctx,
		`UPDATE mesocycles SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating mesocycle status: %w", err)
	}
	return nil
}
