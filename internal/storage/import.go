package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// Backfilled history lands in an archival plan and completed mesocycle so
// the history aggregator reads it through the same joins as native data.

// EnsureExercise returns the exercise with the given name, creating it if
// it does not exist yet.
func (db *DB) EnsureExercise(ctx context.Context, name string) (*models.Exercise, error) {
	ex := &models.Exercise{ID: uuid.New(), Name: name}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO exercises (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`,
		ex.ID, name,
	).Scan(&ex.ID, &ex.Name)
	if err != nil {
		return nil, fmt.Errorf("ensuring exercise %q: %w", name, err)
	}
	return ex, nil
}

// EnsureArchive returns the archival mesocycle for the named plan and its
// single plan day, creating the plan, day, and mesocycle on first use. The
// mesocycle is created already completed so it never competes with the
// active one.
func (db *DB) EnsureArchive(ctx context.Context, planName string, startDate time.Time) (*models.Mesocycle, uuid.UUID, error) {
	var meso models.Mesocycle
	var planDayID uuid.UUID

	err := db.Pool.QueryRow(ctx, `
		SELECT m.id, m.plan_id, m.status, m.duration_weeks, m.start_date, m.created_at, pd.id
		FROM plans p
		JOIN plan_days pd ON pd.plan_id = p.id AND pd.day_number = 1
		JOIN mesocycles m ON m.plan_id = p.id
		WHERE p.name = $1`,
		planName,
	).Scan(&meso.ID, &meso.PlanID, &meso.Status, &meso.DurationWeeks, &meso.StartDate, &meso.CreatedAt, &planDayID)
	if err == nil {
		return &meso, planDayID, nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("beginning archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	planID := uuid.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO plans (id, name, duration_weeks) VALUES ($1, $2, 1)`,
		planID, planName,
	); err != nil {
		return nil, uuid.Nil, fmt.Errorf("inserting archive plan: %w", err)
	}

	planDayID = uuid.New()
	if _, err := tx.Exec(ctx,
		`INSERT INTO plan_days (id, plan_id, day_number, name) VALUES ($1, $2, 1, 'Imported')`,
		planDayID, planID,
	); err != nil {
		return nil, uuid.Nil, fmt.Errorf("inserting archive plan day: %w", err)
	}

	meso = models.Mesocycle{
		ID:            uuid.New(),
		PlanID:        planID,
		Status:        models.MesoCompleted,
		DurationWeeks: 1,
		StartDate:     startDate,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO mesocycles (id, plan_id, status, duration_weeks, start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		meso.ID, meso.PlanID, meso.Status, meso.DurationWeeks, meso.StartDate,
	).Scan(&meso.CreatedAt); err != nil {
		return nil, uuid.Nil, fmt.Errorf("inserting archive mesocycle: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, uuid.Nil, fmt.Errorf("committing archive tx: %w", err)
	}
	return &meso, planDayID, nil
}

// EnsureArchivePlanExercise returns the plan_exercises row binding the
// exercise to the archive day, inserting it at the next free position if
// missing. The config is only recorded on first sight of the exercise.
func (db *DB) EnsureArchivePlanExercise(ctx context.Context, planDayID, exerciseID uuid.UUID, cfg models.ExerciseConfig) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM plan_exercises WHERE plan_day_id = $1 AND exercise_id = $2`,
		planDayID, exerciseID,
	).Scan(&id)
	if err == nil {
		return id, nil
	}

	id = uuid.New()
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO plan_exercises
			(id, plan_day_id, exercise_id, position,
			 weight_increment, min_reps, max_reps, base_weight, base_reps, base_sets)
		SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1, $4, $5, $6, $7, $8, $9
		FROM plan_exercises WHERE plan_day_id = $2`,
		id, planDayID, exerciseID,
		cfg.WeightIncrement, cfg.MinReps, cfg.MaxReps, cfg.BaseWeight, cfg.BaseReps, cfg.BaseSets,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting archive plan exercise: %w", err)
	}
	return id, nil
}

// NextArchiveWeek returns the next unused week number in the archive
// mesocycle. Imported sessions each become their own "week" so the
// (mesocycle, day, week) uniqueness holds.
func (db *DB) NextArchiveWeek(ctx context.Context, mesocycleID uuid.UUID) (int, error) {
	var week int
	err := db.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(week_number), 0) + 1 FROM workouts WHERE mesocycle_id = $1`,
		mesocycleID,
	).Scan(&week)
	if err != nil {
		return 0, fmt.Errorf("next archive week: %w", err)
	}
	return week, nil
}

// InsertArchivedWorkout writes an already-completed historical session.
func (db *DB) InsertArchivedWorkout(ctx context.Context, w *models.Workout) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO workouts (id, mesocycle_id, plan_day_id, week_number, status, scheduled_date, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.MesocycleID, w.PlanDayID, w.WeekNumber, w.Status, w.ScheduledDate, w.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting archived workout: %w", err)
	}
	return nil
}

// InsertArchivedSet writes a completed historical set.
func (db *DB) InsertArchivedSet(ctx context.Context, set *models.WorkoutSet) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO workout_sets
			(id, workout_id, exercise_id, plan_exercise_id, set_number,
			 target_reps, target_weight, actual_reps, actual_weight, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		set.ID, set.WorkoutID, set.ExerciseID, set.PlanExerciseID, set.SetNumber,
		set.TargetReps, set.TargetWeight, set.ActualReps, set.ActualWeight, set.Status,
	)
	if err != nil {
		return fmt.Errorf("inserting archived set: %w", err)
	}
	return nil
}
