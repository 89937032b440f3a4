package progression

import "github.com/meltforce/ironcycle/internal/models"

// WeekSummary is the minimal best-set summary of one earlier week, used for
// failure-streak scanning. Callers supply these newest-first; the scanner
// never issues its own queries.
type WeekSummary struct {
	ActualWeight float64 `json:"actual_weight"`
	ActualReps   int     `json:"actual_reps"`
}

// BestSet selects the single set judged most representative of a session's
// performance for one exercise: the completed set with the highest actual
// weight, ties broken by the highest actual reps at that weight. Returns nil
// when no set in the slice was completed.
func BestSet(sets []models.WorkoutSet) *models.WorkoutSet {
	var best *models.WorkoutSet
	for i := range sets {
		s := &sets[i]
		if s.Status != models.SetCompleted || s.ActualWeight == nil || s.ActualReps == nil {
			continue
		}
		if best == nil {
			best = s
			continue
		}
		switch {
		case *s.ActualWeight > *best.ActualWeight:
			best = s
		case *s.ActualWeight == *best.ActualWeight && *s.ActualReps > *best.ActualReps:
			best = s
		}
	}
	return best
}

// ConsecutiveFailures counts how many weeks in a row, ending with the
// current session, the athlete has failed to reach minReps at an unchanged
// weight. prior is scanned newest-first and the streak stops at the first
// week that either succeeded or was trained at a different weight: a weight
// change always resets the streak, so regression only fires on repeated
// failure at a fixed load.
func ConsecutiveFailures(currentWeight float64, currentReps, minReps int, prior []WeekSummary) int {
	if currentReps >= minReps {
		return 0
	}
	streak := 1
	for _, p := range prior {
		if p.ActualReps >= minReps || p.ActualWeight != currentWeight {
			break
		}
		streak++
	}
	return streak
}

// Reduce turns one workout's raw sets for one exercise into a single
// PreviousWeekPerformance. A workout with zero completed sets for the
// exercise produces nil: the caller must treat that the same as a first
// exposure, not as a failure.
func Reduce(sets []models.WorkoutSet, weekNumber int, cfg models.ExerciseConfig, prior []WeekSummary) *PreviousWeekPerformance {
	best := BestSet(sets)
	if best == nil {
		return nil
	}
	return &PreviousWeekPerformance{
		ExerciseID:          best.ExerciseID,
		WeekNumber:          weekNumber,
		TargetWeight:        best.TargetWeight,
		TargetReps:          best.TargetReps,
		ActualWeight:        *best.ActualWeight,
		ActualReps:          *best.ActualReps,
		HitTarget:           *best.ActualReps >= best.TargetReps,
		ConsecutiveFailures: ConsecutiveFailures(*best.ActualWeight, *best.ActualReps, cfg.MinReps, prior),
	}
}
