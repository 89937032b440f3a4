package lifecycle

import (
	"errors"
	"testing"

	"github.com/meltforce/ironcycle/internal/models"
)

func pendingSet() models.WorkoutSet {
	return models.WorkoutSet{SetNumber: 1, TargetReps: 8, TargetWeight: 100, Status: models.SetPending}
}

// TestLogUnlogRoundTrip verifies log followed by unlog restores the set to
// exactly {actual_reps: nil, actual_weight: nil, status: pending}.
func TestLogUnlogRoundTrip(t *testing.T) {
	s := pendingSet()

	if err := LogSet(&s, 9, 102.5); err != nil {
		t.Fatalf("LogSet: %v", err)
	}
	if s.Status != models.SetCompleted {
		t.Fatalf("status after log = %q, want completed", s.Status)
	}
	if s.ActualReps == nil || *s.ActualReps != 9 {
		t.Errorf("actual reps = %v, want 9", s.ActualReps)
	}
	if s.ActualWeight == nil || *s.ActualWeight != 102.5 {
		t.Errorf("actual weight = %v, want 102.5", s.ActualWeight)
	}

	if err := UnlogSet(&s); err != nil {
		t.Fatalf("UnlogSet: %v", err)
	}
	if s.Status != models.SetPending {
		t.Errorf("status after unlog = %q, want pending", s.Status)
	}
	if s.ActualReps != nil || s.ActualWeight != nil {
		t.Errorf("actuals after unlog = (%v, %v), want (nil, nil)", s.ActualReps, s.ActualWeight)
	}
}

// TestLogSetGuards verifies value and transition guards raise their
// distinct sentinel errors.
func TestLogSetGuards(t *testing.T) {
	s := pendingSet()
	if err := LogSet(&s, -1, 100); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("negative reps: err = %v, want ErrInvalidValue", err)
	}
	if err := LogSet(&s, 8, -5); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("negative weight: err = %v, want ErrInvalidValue", err)
	}
	if s.Status != models.SetPending {
		t.Fatalf("rejected log mutated the set: status = %q", s.Status)
	}

	if err := LogSet(&s, 8, 100); err != nil {
		t.Fatalf("LogSet: %v", err)
	}
	if err := LogSet(&s, 8, 100); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double log: err = %v, want ErrInvalidTransition", err)
	}

	skipped := pendingSet()
	if err := SkipSet(&skipped); err != nil {
		t.Fatalf("SkipSet: %v", err)
	}
	if err := LogSet(&skipped, 8, 100); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("log skipped set: err = %v, want ErrInvalidTransition", err)
	}
}

// TestLogSetZeroValues verifies zero reps and zero weight are legal logs
// (a bodyweight movement, or a set taken to zero completed reps).
func TestLogSetZeroValues(t *testing.T) {
	s := pendingSet()
	if err := LogSet(&s, 0, 0); err != nil {
		t.Fatalf("LogSet(0, 0): %v", err)
	}
	if s.ActualReps == nil || *s.ActualReps != 0 {
		t.Errorf("actual reps = %v, want 0", s.ActualReps)
	}
}

// TestUnlogSetGuards verifies only completed sets can be unlogged.
func TestUnlogSetGuards(t *testing.T) {
	s := pendingSet()
	if err := UnlogSet(&s); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unlog pending: err = %v, want ErrInvalidTransition", err)
	}

	if err := SkipSet(&s); err != nil {
		t.Fatalf("SkipSet: %v", err)
	}
	if err := UnlogSet(&s); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unlog skipped: err = %v, want ErrInvalidTransition", err)
	}
}

// TestSkipSetGuards verifies skipping is pending-only and leaves actuals
// null.
func TestSkipSetGuards(t *testing.T) {
	s := pendingSet()
	if err := SkipSet(&s); err != nil {
		t.Fatalf("SkipSet: %v", err)
	}
	if s.Status != models.SetSkipped {
		t.Errorf("status = %q, want skipped", s.Status)
	}
	if s.ActualReps != nil || s.ActualWeight != nil {
		t.Errorf("skip set actuals = (%v, %v), want (nil, nil)", s.ActualReps, s.ActualWeight)
	}
	if err := SkipSet(&s); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double skip: err = %v, want ErrInvalidTransition", err)
	}
}

// TestSkipWorkout verifies the explicit workout skip and its guards.
func TestSkipWorkout(t *testing.T) {
	w := models.Workout{Status: models.WorkoutInProgress}
	if err := SkipWorkout(&w); err != nil {
		t.Fatalf("SkipWorkout: %v", err)
	}
	if w.Status != models.WorkoutSkipped {
		t.Errorf("status = %q, want skipped", w.Status)
	}
	if err := SkipWorkout(&w); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("skip skipped workout: err = %v, want ErrInvalidTransition", err)
	}

	done := models.Workout{Status: models.WorkoutCompleted}
	if err := SkipWorkout(&done); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("skip completed workout: err = %v, want ErrInvalidTransition", err)
	}
}

// TestDeriveWorkoutStatus covers the pending / in_progress / completed
// derivation and the skipped override.
func TestDeriveWorkoutStatus(t *testing.T) {
	reps, weight := 8, 100.0
	done := models.WorkoutSet{Status: models.SetCompleted, ActualReps: &reps, ActualWeight: &weight}
	pend := models.WorkoutSet{Status: models.SetPending}
	skip := models.WorkoutSet{Status: models.SetSkipped}

	cases := []struct {
		name    string
		current models.WorkoutStatus
		sets    []models.WorkoutSet
		want    models.WorkoutStatus
	}{
		{"untouched stays pending", models.WorkoutPending, []models.WorkoutSet{pend, pend}, models.WorkoutPending},
		{"first interaction starts", models.WorkoutPending, []models.WorkoutSet{done, pend}, models.WorkoutInProgress},
		{"skip also starts", models.WorkoutPending, []models.WorkoutSet{skip, pend}, models.WorkoutInProgress},
		{"all completed or skipped finishes", models.WorkoutInProgress, []models.WorkoutSet{done, skip}, models.WorkoutCompleted},
		{"unlog reopens a completed workout", models.WorkoutCompleted, []models.WorkoutSet{done, pend}, models.WorkoutInProgress},
		{"skipped workout stays skipped", models.WorkoutSkipped, []models.WorkoutSet{done, done}, models.WorkoutSkipped},
		{"no sets means pending", models.WorkoutPending, nil, models.WorkoutPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveWorkoutStatus(tc.current, tc.sets); got != tc.want {
				t.Errorf("DeriveWorkoutStatus = %q, want %q", got, tc.want)
			}
		})
	}
}
