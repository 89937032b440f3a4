// Package progression implements the progressive-overload computation: the
// pure functions that turn one week's logged performance into the next
// week's prescribed weight, reps, and sets. Nothing here performs I/O; the
// service layer feeds it already-persisted rows and writes its outputs back.
package progression

import (
	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// Reason explains why the engine chose a particular set of targets. The set
// is closed; Describe switches over it exhaustively.
type Reason string

const (
	ReasonFirstWeek  Reason = "first_week"
	ReasonHitMaxReps Reason = "hit_max_reps"
	ReasonHitTarget  Reason = "hit_target"
	ReasonHold       Reason = "hold"
	ReasonRegress    Reason = "regress"
	ReasonDeload     Reason = "deload"
)

// Valid reports whether r is a recognized reason code.
func (r Reason) Valid() bool {
	switch r {
	case ReasonFirstWeek, ReasonHitMaxReps, ReasonHitTarget, ReasonHold, ReasonRegress, ReasonDeload:
		return true
	}
	return false
}

// Describe returns a short human-readable explanation of the reason,
// suitable for the "why did my targets change" display.
func (r Reason) Describe() string {
	switch r {
	case ReasonFirstWeek:
		return "first exposure: starting from the plan's base targets"
	case ReasonHitMaxReps:
		return "top of the rep range reached: weight added, reps reset to the bottom of the range"
	case ReasonHitTarget:
		return "target reps hit: one rep added at the same weight"
	case ReasonHold:
		return "targets held at the current weight"
	case ReasonRegress:
		return "repeated failure at this weight: load reduced"
	case ReasonDeload:
		return "recovery week: reduced weight and volume"
	default:
		return "unknown"
	}
}

// Targets is the engine's output for one exercise and one upcoming week.
type Targets struct {
	TargetWeight float64 `json:"target_weight"`
	TargetReps   int     `json:"target_reps"`
	TargetSets   int     `json:"target_sets"`
	IsDeload     bool    `json:"is_deload"`
	Reason       Reason  `json:"reason"`
}

// PreviousWeekPerformance is the judged summary of one exercise's most
// recent week: the best logged set measured against what was prescribed,
// plus the running failure streak at the current load. Derived on demand,
// never persisted.
type PreviousWeekPerformance struct {
	ExerciseID          uuid.UUID `json:"exercise_id"`
	WeekNumber          int       `json:"week_number"`
	TargetWeight        float64   `json:"target_weight"`
	TargetReps          int       `json:"target_reps"`
	ActualWeight        float64   `json:"actual_weight"`
	ActualReps          int       `json:"actual_reps"`
	HitTarget           bool      `json:"hit_target"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
}

// RegressionThreshold is how many consecutive failed weeks at an unchanged
// weight it takes before the engine reduces the load. A single bad session
// never regresses.
const RegressionThreshold = 2

// NextTargets computes next week's prescription for one exercise. prev is
// nil on the athlete's first exposure to the exercise (including a week
// where no set was attempted: an athlete who never tried is not penalized).
// The function is total: every input combination yields targets.
func NextTargets(cfg models.ExerciseConfig, prev *PreviousWeekPerformance, isDeloadWeek bool) Targets {
	if prev == nil {
		return Targets{
			TargetWeight: cfg.BaseWeight,
			TargetReps:   cfg.BaseReps,
			TargetSets:   cfg.BaseSets,
			Reason:       ReasonFirstWeek,
		}
	}

	if isDeloadWeek {
		return DeloadTargets(cfg, prev.ActualWeight, prev.ActualReps)
	}

	switch {
	case prev.ActualReps < cfg.MinReps && prev.ConsecutiveFailures >= RegressionThreshold:
		// Repeated failure at a fixed load: step the weight back, floored
		// at the plan's base weight.
		weight := prev.ActualWeight - cfg.WeightIncrement
		if weight < cfg.BaseWeight {
			weight = cfg.BaseWeight
		}
		return Targets{
			TargetWeight: RoundToNearest(weight, WeightRounding),
			TargetReps:   cfg.MinReps,
			TargetSets:   cfg.BaseSets,
			Reason:       ReasonRegress,
		}

	case prev.ActualReps >= cfg.MaxReps:
		// Double progression: the top of the rep range was reached, so add
		// weight and reset reps to the bottom of the range.
		return Targets{
			TargetWeight: RoundToNearest(prev.ActualWeight+cfg.WeightIncrement, WeightRounding),
			TargetReps:   cfg.MinReps,
			TargetSets:   cfg.BaseSets,
			Reason:       ReasonHitMaxReps,
		}

	case prev.ActualReps >= prev.TargetReps:
		// Target hit but range not topped out: climb one rep at this weight.
		reps := prev.TargetReps + 1
		if reps > cfg.MaxReps {
			reps = cfg.MaxReps
		}
		return Targets{
			TargetWeight: prev.ActualWeight,
			TargetReps:   reps,
			TargetSets:   cfg.BaseSets,
			Reason:       ReasonHitTarget,
		}

	case prev.ActualReps >= cfg.MinReps:
		// In range but short of target: hold everything.
		return Targets{
			TargetWeight: prev.ActualWeight,
			TargetReps:   prev.TargetReps,
			TargetSets:   cfg.BaseSets,
			Reason:       ReasonHold,
		}

	default:
		// Below the range but the failure streak is under the threshold:
		// hold the weight and aim for the bottom of the range.
		return Targets{
			TargetWeight: prev.ActualWeight,
			TargetReps:   cfg.MinReps,
			TargetSets:   cfg.BaseSets,
			Reason:       ReasonHold,
		}
	}
}
