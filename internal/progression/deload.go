package progression

import (
	"math"

	"github.com/meltforce/ironcycle/internal/models"
)

// Deload constants. Exported so the UI layer can explain why a recovery
// week is lighter.
const (
	// DeloadWeightFactor scales the carried-over weight on a deload week.
	DeloadWeightFactor = 0.85
	// DeloadSetFactor scales the plan's base set count on a deload week.
	DeloadSetFactor = 0.5
	// WeightRounding is the increment granularity all computed weights are
	// rounded to.
	WeightRounding = 2.5
)

// DeloadTargets computes the recovery-week prescription: weight cut to 85%
// of the current working weight (rounded to the nearest 2.5), set count
// halved (never below one set), reps carried over unchanged. Deterministic:
// identical inputs always yield identical targets.
func DeloadTargets(cfg models.ExerciseConfig, currentWeight float64, currentReps int) Targets {
	sets := int(math.Ceil(float64(cfg.BaseSets) * DeloadSetFactor))
	if sets < 1 {
		sets = 1
	}
	return Targets{
		TargetWeight: RoundToNearest(currentWeight*DeloadWeightFactor, WeightRounding),
		TargetReps:   currentReps,
		TargetSets:   sets,
		IsDeload:     true,
		Reason:       ReasonDeload,
	}
}

// RoundToNearest rounds x to the nearest multiple of inc. A non-positive
// increment returns x unchanged.
func RoundToNearest(x, inc float64) float64 {
	if inc <= 0 {
		return x
	}
	return math.Round(x/inc) * inc
}
