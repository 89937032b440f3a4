// Package lifecycle is the state machine governing how raw sets get logged,
// skipped, or unlogged, and how a workout's status derives from its sets.
// All transitions are pure mutations of in-memory rows; persistence belongs
// to the caller.
package lifecycle

import (
	"fmt"

	"github.com/meltforce/ironcycle/internal/models"
)

// LogSet records an attempted set: both actuals become non-null and the set
// completes. Only pending sets can be logged; reps must be a non-negative
// integer and weight non-negative.
func LogSet(s *models.WorkoutSet, reps int, weight float64) error {
	if reps < 0 {
		return fmt.Errorf("%w: reps must be non-negative, got %d", ErrInvalidValue, reps)
	}
	if weight < 0 {
		return fmt.Errorf("%w: weight must be non-negative, got %v", ErrInvalidValue, weight)
	}
	if s.Status != models.SetPending {
		return fmt.Errorf("%w: cannot log a %s set", ErrInvalidTransition, s.Status)
	}
	s.ActualReps = &reps
	s.ActualWeight = &weight
	s.Status = models.SetCompleted
	return nil
}

// UnlogSet reverses a log: both actuals return to null and the set is
// pending again. Only completed sets can be unlogged.
func UnlogSet(s *models.WorkoutSet) error {
	if s.Status != models.SetCompleted {
		return fmt.Errorf("%w: cannot unlog a %s set", ErrInvalidTransition, s.Status)
	}
	s.ActualReps = nil
	s.ActualWeight = nil
	s.Status = models.SetPending
	return nil
}

// SkipSet marks a pending set as deliberately not attempted. Actuals stay
// null: a skipped set never counts as performance.
func SkipSet(s *models.WorkoutSet) error {
	if s.Status != models.SetPending {
		return fmt.Errorf("%w: cannot skip a %s set", ErrInvalidTransition, s.Status)
	}
	s.Status = models.SetSkipped
	return nil
}

// SkipWorkout marks an entire session as skipped. Allowed from pending or
// in_progress; completed and already-skipped workouts are final.
func SkipWorkout(w *models.Workout) error {
	if w.Status == models.WorkoutCompleted || w.Status == models.WorkoutSkipped {
		return fmt.Errorf("%w: cannot skip a %s workout", ErrInvalidTransition, w.Status)
	}
	w.Status = models.WorkoutSkipped
	return nil
}

// DeriveWorkoutStatus computes a workout's status from its sets: pending
// until the first set interaction, in_progress while any set remains
// pending, completed once every set is completed or skipped. An explicitly
// skipped workout stays skipped regardless of its sets.
func DeriveWorkoutStatus(current models.WorkoutStatus, sets []models.WorkoutSet) models.WorkoutStatus {
	if current == models.WorkoutSkipped {
		return models.WorkoutSkipped
	}
	if len(sets) == 0 {
		return models.WorkoutPending
	}

	touched := 0
	for _, s := range sets {
		if s.Status != models.SetPending {
			touched++
		}
	}
	switch touched {
	case 0:
		return models.WorkoutPending
	case len(sets):
		return models.WorkoutCompleted
	default:
		return models.WorkoutInProgress
	}
}
