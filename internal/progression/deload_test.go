package progression

import (
	"testing"

	"github.com/meltforce/ironcycle/internal/models"
)

// TestDeloadTargetsRounding verifies deload weights round to the nearest
// 2.5: 45 x 0.85 = 38.25, which rounds down to 37.5.
func TestDeloadTargetsRounding(t *testing.T) {
	got := DeloadTargets(benchConfig, 45, 8)

	if got.TargetWeight != 37.5 {
		t.Errorf("target weight = %v, want 37.5", got.TargetWeight)
	}
	if got.TargetReps != 8 {
		t.Errorf("target reps = %d, want 8 (carried over)", got.TargetReps)
	}
	if !got.IsDeload || got.Reason != ReasonDeload {
		t.Errorf("flags = (%v, %q), want (true, %q)", got.IsDeload, got.Reason, ReasonDeload)
	}
}

// TestDeloadTargetsSetHalving verifies set counts halve with a ceiling and
// never drop below one working set.
func TestDeloadTargetsSetHalving(t *testing.T) {
	cases := []struct {
		baseSets int
		want     int
	}{
		{5, 3},
		{4, 2},
		{3, 2},
		{2, 1},
		{1, 1},
		{0, 1},
	}
	for _, tc := range cases {
		cfg := models.ExerciseConfig{BaseSets: tc.baseSets}
		got := DeloadTargets(cfg, 100, 8)
		if got.TargetSets != tc.want {
			t.Errorf("baseSets=%d: target sets = %d, want %d", tc.baseSets, got.TargetSets, tc.want)
		}
	}
}

// TestDeloadTargetsIdempotent verifies computing deload targets twice from
// identical inputs yields identical output.
func TestDeloadTargetsIdempotent(t *testing.T) {
	a := DeloadTargets(benchConfig, 102.5, 9)
	b := DeloadTargets(benchConfig, 102.5, 9)
	if a != b {
		t.Errorf("repeated deload computation differs: %+v vs %+v", a, b)
	}
}

// TestRoundToNearest covers the rounding helper across increments,
// including the degenerate zero increment.
func TestRoundToNearest(t *testing.T) {
	cases := []struct {
		x, inc float64
		want   float64
	}{
		{38.25, 2.5, 37.5},
		{38.75, 2.5, 40},
		{100, 2.5, 100},
		{101.2, 2.5, 100},
		{101.3, 2.5, 102.5},
		{7.3, 0, 7.3},
	}
	for _, tc := range cases {
		if got := RoundToNearest(tc.x, tc.inc); got != tc.want {
			t.Errorf("RoundToNearest(%v, %v) = %v, want %v", tc.x, tc.inc, got, tc.want)
		}
	}
}
