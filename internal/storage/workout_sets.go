package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// GetWorkoutSet retrieves a single set by ID.
func (db *DB) GetWorkoutSet(ctx context.Context, id uuid.UUID) (*models.WorkoutSet, error) {
	var s models.WorkoutSet
	err := db.Pool.QueryRow(ctx,
		`SELECT id, workout_id, exercise_id, plan_exercise_id, set_number,
		        target_reps, target_weight, actual_reps, actual_weight, status
		 FROM workout_sets WHERE id = $1`, id).
		Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.PlanExerciseID, &s.SetNumber,
			&s.TargetReps, &s.TargetWeight, &s.ActualReps, &s.ActualWeight, &s.Status)
	if err != nil {
		return nil, notFound(fmt.Errorf("querying workout set: %w", err), "workout set")
	}
	return &s, nil
}

// UpdateWorkoutSet persists a set's actuals and status after a lifecycle
// transition.
func (db *DB) UpdateWorkoutSet(ctx context.Context, s *models.WorkoutSet) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_sets SET actual_reps = $1, actual_weight = $2, status = $3 WHERE id = $4`,
		s.ActualReps, s.ActualWeight, s.Status, s.ID)
	if err != nil {
		return fmt.Errorf("updating workout set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundRow("workout set")
	}
	return nil
}

// QuerySetsForWorkout retrieves all sets of a workout ordered by exercise
// then set number.
func (db *DB) QuerySetsForWorkout(ctx context.Context, workoutID uuid.UUID) ([]models.WorkoutSet, error) {
	return db.querySets(ctx,
		`SELECT id, workout_id, exercise_id, plan_exercise_id, set_number,
		        target_reps, target_weight, actual_reps, actual_weight, status
		 FROM workout_sets
		 WHERE workout_id = $1
		 ORDER BY plan_exercise_id, set_number ASC`, workoutID)
}

// QuerySetsForExerciseInWorkout retrieves one exercise's sets within one
// workout, the input the performance aggregator reduces.
func (db *DB) QuerySetsForExerciseInWorkout(ctx context.Context, workoutID, exerciseID uuid.UUID) ([]models.WorkoutSet, error) {
	return db.querySets(ctx,
		`SELECT id, workout_id, exercise_id, plan_exercise_id, set_number,
		        target_reps, target_weight, actual_reps, actual_weight, status
		 FROM workout_sets
		 WHERE workout_id = $1 AND exercise_id = $2
		 ORDER BY set_number ASC`, workoutID, exerciseID)
}

func (db *DB) querySets(ctx context.Context, query string, args ...any) ([]models.WorkoutSet, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSet
	for rows.Next() {
		var s models.WorkoutSet
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.PlanExerciseID, &s.SetNumber,
			&s.TargetReps, &s.TargetWeight, &s.ActualReps, &s.ActualWeight, &s.Status); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// QueryCompletedSetsForExercise retrieves all of an exercise's completed
// sets joined with workout and mesocycle metadata, oldest first. This is
// the history aggregator's input.
func (db *DB) QueryCompletedSetsForExercise(ctx context.Context, exerciseID uuid.UUID) ([]models.CompletedSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT ws.workout_id, ws.exercise_id, ws.set_number, ws.actual_weight, ws.actual_reps,
		        w.week_number, w.mesocycle_id, w.scheduled_date, w.completed_at
		 FROM workout_sets ws
		 JOIN workouts w ON w.id = ws.workout_id
		 WHERE ws.exercise_id = $1 AND ws.status = 'completed'
		 ORDER BY COALESCE(w.completed_at, w.scheduled_date) ASC, ws.set_number ASC`,
		exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying completed sets: %w", err)
	}
	defer rows.Close()

	var result []models.CompletedSetRow
	for rows.Next() {
		var r models.CompletedSetRow
		if err := rows.Scan(&r.WorkoutID, &r.ExerciseID, &r.SetNumber, &r.ActualWeight, &r.ActualReps,
			&r.WeekNumber, &r.MesocycleID, &r.ScheduledDate, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning completed set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ApplyWeekTargets rewrites one exercise's pending sets for a workout with
// newly computed targets. Pending sets beyond targetSets are deleted (the
// deload week prescribes fewer sets than were materialized); completed or
// skipped sets are never touched. Extra sets are appended when targetSets
// exceeds what remains.
func (db *DB) ApplyWeekTargets(ctx context.Context, workoutID uuid.UUID, t models.WeekTargets) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning target apply: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, set_number FROM workout_sets
		 WHERE workout_id = $1 AND exercise_id = $2 AND status = 'pending'
		 ORDER BY set_number ASC`, workoutID, t.ExerciseID)
	if err != nil {
		return fmt.Errorf("querying pending sets: %w", err)
	}
	type pendingSet struct {
		id        uuid.UUID
		setNumber int
	}
	var pending []pendingSet
	maxSetNumber := 0
	for rows.Next() {
		var p pendingSet
		if err := rows.Scan(&p.id, &p.setNumber); err != nil {
			rows.Close()
			return fmt.Errorf("scanning pending set: %w", err)
		}
		if p.setNumber > maxSetNumber {
			maxSetNumber = p.setNumber
		}
		pending = append(pending, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i, p := range pending {
		if i < t.TargetSets {
			_, err = tx.Exec(ctx,
				`UPDATE workout_sets SET target_reps = $1, target_weight = $2 WHERE id = $3`,
				t.TargetReps, t.TargetWeight, p.id)
		} else {
			_, err = tx.Exec(ctx, `DELETE FROM workout_sets WHERE id = $1`, p.id)
		}
		if err != nil {
			return fmt.Errorf("rewriting pending set: %w", err)
		}
	}

	for extra := len(pending); extra < t.TargetSets; extra++ {
		maxSetNumber++
		_, err = tx.Exec(ctx,
			`INSERT INTO workout_sets (id, workout_id, exercise_id, plan_exercise_id,
			 set_number, target_reps, target_weight, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')`,
			uuid.New(), workoutID, t.ExerciseID, t.PlanExerciseID,
			maxSetNumber, t.TargetReps, t.TargetWeight)
		if err != nil {
			return fmt.Errorf("appending target set: %w", err)
		}
	}

	return tx.Commit(ctx)
}
