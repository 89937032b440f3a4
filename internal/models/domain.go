package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a movement the athlete can train (e.g. "Barbell Bench Press").
type Exercise struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ExerciseConfig carries the plan-template parameters the progression engine
// reads for one exercise. It is immutable input: the engine never writes it.
type ExerciseConfig struct {
	WeightIncrement float64 `json:"weight_increment"`
	MinReps         int     `json:"min_reps"`
	MaxReps         int     `json:"max_reps"`
	BaseWeight      float64 `json:"base_weight"`
	BaseReps        int     `json:"base_reps"`
	BaseSets        int     `json:"base_sets"`
}

// Plan is a reusable training template from which mesocycles are generated.
type Plan struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	DurationWeeks int       `json:"duration_weeks"`
}

// PlanDay is one training day within a plan (e.g. "Day 2: Pull").
type PlanDay struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"plan_id"`
	DayNumber int       `json:"day_number"`
	Name      string    `json:"name"`
}

// PlanExercise binds an exercise to a plan day together with its
// progression configuration.
type PlanExercise struct {
	ID         uuid.UUID      `json:"id"`
	PlanDayID  uuid.UUID      `json:"plan_day_id"`
	ExerciseID uuid.UUID      `json:"exercise_id"`
	Position   int            `json:"position"`
	Config     ExerciseConfig `json:"config"`
}

// Mesocycle is a generated multi-week training block. At most one mesocycle
// is active system-wide; the storage layer enforces this with a partial
// unique index.
type Mesocycle struct {
	ID            uuid.UUID       `json:"id"`
	PlanID        uuid.UUID       `json:"plan_id"`
	Status        MesocycleStatus `json:"status"`
	DurationWeeks int             `json:"duration_weeks"`
	StartDate     time.Time       `json:"start_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DeloadWeek returns the week number of the recovery week: the one past the
// plan's configured duration. Mesocycle length is configurable, so the
// deload week is derived, never hardcoded.
func (m Mesocycle) DeloadWeek() int {
	return m.DurationWeeks + 1
}

// TotalWeeks returns the number of materialized weeks including the deload.
func (m Mesocycle) TotalWeeks() int {
	return m.DurationWeeks + 1
}

// Workout is one scheduled session: a (mesocycle, plan day, week) triple.
// All weeks' workouts are materialized up front at mesocycle creation.
type Workout struct {
	ID            uuid.UUID     `json:"id"`
	MesocycleID   uuid.UUID     `json:"mesocycle_id"`
	PlanDayID     uuid.UUID     `json:"plan_day_id"`
	WeekNumber    int           `json:"week_number"`
	Status        WorkoutStatus `json:"status"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// SessionDate returns the date a workout should be attributed to:
// the completion time when present, otherwise the scheduled date.
func (w Workout) SessionDate() time.Time {
	if w.CompletedAt != nil {
		return *w.CompletedAt
	}
	return w.ScheduledDate
}

// WorkoutSet is a single prescribed set for one exercise within a workout.
// Targets are always set; actuals are both nil (pending/skipped) or both
// non-nil (completed).
type WorkoutSet struct {
	ID             uuid.UUID `json:"id"`
	WorkoutID      uuid.UUID `json:"workout_id"`
	ExerciseID     uuid.UUID `json:"exercise_id"`
	PlanExerciseID uuid.UUID `json:"plan_exercise_id"`
	SetNumber      int       `json:"set_number"`
	TargetReps     int       `json:"target_reps"`
	TargetWeight   float64   `json:"target_weight"`
	ActualReps     *int      `json:"actual_reps"`
	ActualWeight   *float64  `json:"actual_weight"`
	Status         SetStatus `json:"status"`
}

// WeekTargets is the progression engine's output for one exercise, consumed
// by the workout generator to populate the following week's sets.
type WeekTargets struct {
	ExerciseID     uuid.UUID `json:"exercise_id"`
	PlanExerciseID uuid.UUID `json:"plan_exercise_id"`
	TargetWeight   float64   `json:"target_weight"`
	TargetReps     int       `json:"target_reps"`
	TargetSets     int       `json:"target_sets"`
	WeekNumber     int       `json:"week_number"`
	IsDeload       bool      `json:"is_deload"`
	Reason         string    `json:"reason"`
}

// CompletedSetRow is a completed workout_sets row joined with its workout and
// mesocycle metadata, the shape the history aggregator reduces over.
type CompletedSetRow struct {
	WorkoutID     uuid.UUID  `json:"workout_id"`
	ExerciseID    uuid.UUID  `json:"exercise_id"`
	SetNumber     int        `json:"set_number"`
	ActualWeight  float64    `json:"actual_weight"`
	ActualReps    int        `json:"actual_reps"`
	WeekNumber    int        `json:"week_number"`
	MesocycleID   uuid.UUID  `json:"mesocycle_id"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// SessionDate returns the date this row's session is attributed to.
func (r CompletedSetRow) SessionDate() time.Time {
	if r.CompletedAt != nil {
		return *r.CompletedAt
	}
	return r.ScheduledDate
}
