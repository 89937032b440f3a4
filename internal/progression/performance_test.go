package progression

import (
	"testing"

	"github.com/meltforce/ironcycle/internal/models"
)

func completedSet(setNumber int, weight float64, reps int, targetWeight float64, targetReps int) models.WorkoutSet {
	w, r := weight, reps
	return models.WorkoutSet{
		SetNumber:    setNumber,
		TargetReps:   targetReps,
		TargetWeight: targetWeight,
		ActualReps:   &r,
		ActualWeight: &w,
		Status:       models.SetCompleted,
	}
}

// TestBestSetSelection verifies the best-set rule: highest weight wins, not
// an average. A session of (100x10), (110x8), (105x9) judges as 110x8.
func TestBestSetSelection(t *testing.T) {
	sets := []models.WorkoutSet{
		completedSet(1, 100, 10, 100, 8),
		completedSet(2, 110, 8, 100, 8),
		completedSet(3, 105, 9, 100, 8),
	}

	best := BestSet(sets)
	if best == nil {
		t.Fatal("BestSet returned nil")
	}
	if *best.ActualWeight != 110 {
		t.Errorf("best weight = %v, want 110", *best.ActualWeight)
	}
	if *best.ActualReps != 8 {
		t.Errorf("best set reps = %d, want 8", *best.ActualReps)
	}
}

// TestBestSetTieBreak verifies ties at the same weight break on the higher
// rep count.
func TestBestSetTieBreak(t *testing.T) {
	sets := []models.WorkoutSet{
		completedSet(1, 100, 8, 100, 8),
		completedSet(2, 100, 11, 100, 8),
		completedSet(3, 100, 9, 100, 8),
	}

	best := BestSet(sets)
	if best == nil {
		t.Fatal("BestSet returned nil")
	}
	if *best.ActualReps != 11 {
		t.Errorf("best set reps = %d, want 11", *best.ActualReps)
	}
}

// TestBestSetIgnoresNonCompleted verifies pending and skipped sets never
// contribute, even if they somehow carry stale actuals.
func TestBestSetIgnoresNonCompleted(t *testing.T) {
	pending := models.WorkoutSet{SetNumber: 1, Status: models.SetPending}
	skipped := models.WorkoutSet{SetNumber: 2, Status: models.SetSkipped}
	done := completedSet(3, 80, 10, 80, 8)

	best := BestSet([]models.WorkoutSet{pending, skipped, done})
	if best == nil || *best.ActualWeight != 80 {
		t.Fatalf("best = %+v, want the completed 80x10 set", best)
	}

	if got := BestSet([]models.WorkoutSet{pending, skipped}); got != nil {
		t.Errorf("BestSet with no completed sets = %+v, want nil", got)
	}
}

// TestConsecutiveFailures covers the streak scanner: the current failing
// session counts, prior failures at the same weight extend the streak, and
// either a success or a weight change stops it.
func TestConsecutiveFailures(t *testing.T) {
	const minReps = 8
	cases := []struct {
		name          string
		currentWeight float64
		currentReps   int
		prior         []WeekSummary
		want          int
	}{
		{
			name:          "success is never a streak",
			currentWeight: 100, currentReps: 8,
			prior: []WeekSummary{{100, 6}, {100, 7}},
			want:  0,
		},
		{
			name:          "first failure counts one",
			currentWeight: 100, currentReps: 7,
			prior: nil,
			want:  1,
		},
		{
			name:          "prior failure at same weight extends",
			currentWeight: 100, currentReps: 6,
			prior: []WeekSummary{{100, 7}},
			want:  2,
		},
		{
			name:          "weight change resets the streak",
			currentWeight: 100, currentReps: 6,
			prior: []WeekSummary{{95, 5}, {95, 6}},
			want:  1,
		},
		{
			name:          "prior success stops the scan",
			currentWeight: 100, currentReps: 6,
			prior: []WeekSummary{{100, 7}, {100, 9}, {100, 5}},
			want:  2,
		},
		{
			name:          "three week slide at fixed load",
			currentWeight: 100, currentReps: 5,
			prior: []WeekSummary{{100, 6}, {100, 7}},
			want:  3,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ConsecutiveFailures(tc.currentWeight, tc.currentReps, minReps, tc.prior)
			if got != tc.want {
				t.Errorf("ConsecutiveFailures = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestReduce verifies a workout's sets reduce to one judged performance
// record with hitTarget measured against the prescribed target reps.
func TestReduce(t *testing.T) {
	sets := []models.WorkoutSet{
		completedSet(1, 100, 10, 100, 9),
		completedSet(2, 100, 9, 100, 9),
		completedSet(3, 100, 8, 100, 9),
	}

	perf := Reduce(sets, 3, benchConfig, nil)
	if perf == nil {
		t.Fatal("Reduce returned nil")
	}
	if perf.WeekNumber != 3 {
		t.Errorf("week number = %d, want 3", perf.WeekNumber)
	}
	if perf.ActualWeight != 100 || perf.ActualReps != 10 {
		t.Errorf("best = %v x %d, want 100 x 10", perf.ActualWeight, perf.ActualReps)
	}
	if !perf.HitTarget {
		t.Error("hitTarget = false, want true (10 >= 9)")
	}
	if perf.ConsecutiveFailures != 0 {
		t.Errorf("consecutive failures = %d, want 0", perf.ConsecutiveFailures)
	}
}

// TestReduceNoCompletedSets verifies a workout with zero completed sets for
// the exercise produces no performance record at all, so the engine treats
// the next week as a first exposure rather than a failure.
func TestReduceNoCompletedSets(t *testing.T) {
	sets := []models.WorkoutSet{
		{SetNumber: 1, Status: models.SetSkipped},
		{SetNumber: 2, Status: models.SetPending},
	}
	if perf := Reduce(sets, 2, benchConfig, nil); perf != nil {
		t.Errorf("Reduce = %+v, want nil", perf)
	}
}

// TestReduceFailureStreak verifies Reduce threads the caller-supplied prior
// history into the streak count.
func TestReduceFailureStreak(t *testing.T) {
	sets := []models.WorkoutSet{completedSet(1, 100, 6, 100, 8)}
	prior := []WeekSummary{{ActualWeight: 100, ActualReps: 7}}

	perf := Reduce(sets, 3, benchConfig, prior)
	if perf == nil {
		t.Fatal("Reduce returned nil")
	}
	if perf.ConsecutiveFailures != 2 {
		t.Errorf("consecutive failures = %d, want 2", perf.ConsecutiveFailures)
	}
	if perf.HitTarget {
		t.Error("hitTarget = true, want false")
	}
}
