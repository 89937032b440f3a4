// Package service composes the storage layer with the pure progression,
// history, and lifecycle packages. It owns the read-compute-write cycle:
// the core functions never see the database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/history"
	"github.com/meltforce/ironcycle/internal/lifecycle"
	"github.com/meltforce/ironcycle/internal/models"
	"github.com/meltforce/ironcycle/internal/progression"
	"github.com/meltforce/ironcycle/internal/storage"
)

// Service wires the domain together for the HTTP and MCP surfaces.
type Service struct {
	db  *storage.DB
	log *slog.Logger
}

// New creates a Service.
func New(db *storage.DB, log *slog.Logger) *Service {
	return &Service{db: db, log: log}
}

// CreateExercise adds a movement to the catalog. Names are unique.
func (s *Service) CreateExercise(ctx context.Context, name string) (*models.Exercise, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", lifecycle.ErrInvalidValue)
	}
	ex := models.Exercise{ID: uuid.New(), Name: name}
	inserted, err := s.db.InsertExercise(ctx, ex)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("%w: exercise %q already exists", lifecycle.ErrInvalidValue, name)
	}
	return &ex, nil
}

// PlanDayInput describes one day of a new plan template.
type PlanDayInput struct {
	DayNumber int                 `json:"day_number"`
	Name      string              `json:"name"`
	Exercises []PlanExerciseInput `json:"exercises"`
}

// PlanExerciseInput binds an exercise and its progression config to a day.
type PlanExerciseInput struct {
	ExerciseID uuid.UUID             `json:"exercise_id"`
	Config     models.ExerciseConfig `json:"config"`
}

// CreatePlan stores a new training template with its days and per-exercise
// progression configs.
func (s *Service) CreatePlan(ctx context.Context, name string, durationWeeks int, dayInputs []PlanDayInput) (*models.Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: plan name is required", lifecycle.ErrInvalidValue)
	}
	if durationWeeks < 1 {
		return nil, fmt.Errorf("%w: duration_weeks must be at least 1", lifecycle.ErrInvalidValue)
	}
	if len(dayInputs) == 0 {
		return nil, fmt.Errorf("%w: a plan needs at least one day", lifecycle.ErrInvalidValue)
	}

	plan := models.Plan{ID: uuid.New(), Name: name, DurationWeeks: durationWeeks}
	var days []models.PlanDay
	var exercises []models.PlanExercise
	for _, di := range dayInputs {
		day := models.PlanDay{ID: uuid.New(), PlanID: plan.ID, DayNumber: di.DayNumber, Name: di.Name}
		days = append(days, day)
		for pos, ei := range di.Exercises {
			cfg := ei.Config
			if cfg.MinReps < 1 || cfg.MaxReps < cfg.MinReps || cfg.BaseSets < 1 {
				return nil, fmt.Errorf("%w: invalid config for exercise %s on day %d",
					lifecycle.ErrInvalidValue, ei.ExerciseID, di.DayNumber)
			}
			exercises = append(exercises, models.PlanExercise{
				ID:         uuid.New(),
				PlanDayID:  day.ID,
				ExerciseID: ei.ExerciseID,
				Position:   pos + 1,
				Config:     cfg,
			})
		}
	}

	if err := s.db.InsertPlan(ctx, plan, days, exercises); err != nil {
		return nil, err
	}
	s.log.Info("plan created", "id", plan.ID, "days", len(days), "exercises", len(exercises))
	return &plan, nil
}

// CreateMesocycle generates a new training block from a plan template.
func (s *Service) CreateMesocycle(ctx context.Context, planID uuid.UUID, startDate time.Time) (*models.Mesocycle, error) {
	meso, err := s.db.CreateMesocycle(ctx, planID, startDate)
	if err != nil {
		return nil, err
	}
	s.log.Info("mesocycle created", "id", meso.ID, "plan", planID, "weeks", meso.TotalWeeks())
	return meso, nil
}

// ActiveMesocycle returns the single active mesocycle, if any.
func (s *Service) ActiveMesocycle(ctx context.Context) (*models.Mesocycle, error) {
	return s.db.GetActiveMesocycle(ctx)
}

// CompleteMesocycle marks the mesocycle finished.
func (s *Service) CompleteMesocycle(ctx context.Context, id uuid.UUID) error {
	return s.db.SetMesocycleStatus(ctx, id, models.MesoCompleted)
}

// CancelMesocycle abandons the mesocycle.
func (s *Service) CancelMesocycle(ctx context.Context, id uuid.UUID) error {
	return s.db.SetMesocycleStatus(ctx, id, models.MesoCancelled)
}

// LogSet records an attempted set and refreshes the owning workout's
// status.
func (s *Service) LogSet(ctx context.Context, setID uuid.UUID, reps int, weight float64) (*models.WorkoutSet, error) {
	set, err := s.db.GetWorkoutSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.LogSet(set, reps, weight); err != nil {
		return nil, err
	}
	if err := s.db.UpdateWorkoutSet(ctx, set); err != nil {
		return nil, err
	}
	if err := s.refreshWorkoutStatus(ctx, set.WorkoutID); err != nil {
		return nil, err
	}
	return set, nil
}

// UnlogSet reverses a logged set, restoring it to pending with null
// actuals.
func (s *Service) UnlogSet(ctx context.Context, setID uuid.UUID) (*models.WorkoutSet, error) {
	set, err := s.db.GetWorkoutSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.UnlogSet(set); err != nil {
		return nil, err
	}
	if err := s.db.UpdateWorkoutSet(ctx, set); err != nil {
		return nil, err
	}
	if err := s.refreshWorkoutStatus(ctx, set.WorkoutID); err != nil {
		return nil, err
	}
	return set, nil
}

// SkipSet marks a pending set as deliberately not attempted.
func (s *Service) SkipSet(ctx context.Context, setID uuid.UUID) (*models.WorkoutSet, error) {
	set, err := s.db.GetWorkoutSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.SkipSet(set); err != nil {
		return nil, err
	}
	if err := s.db.UpdateWorkoutSet(ctx, set); err != nil {
		return nil, err
	}
	if err := s.refreshWorkoutStatus(ctx, set.WorkoutID); err != nil {
		return nil, err
	}
	return set, nil
}

// SkipWorkout explicitly skips an entire session.
func (s *Service) SkipWorkout(ctx context.Context, workoutID uuid.UUID) (*models.Workout, error) {
	w, err := s.db.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.SkipWorkout(w); err != nil {
		return nil, err
	}
	if err := s.db.UpdateWorkoutStatus(ctx, w.ID, w.Status, w.CompletedAt); err != nil {
		return nil, err
	}
	return w, nil
}

// Workout returns one workout with its sets.
func (s *Service) Workout(ctx context.Context, workoutID uuid.UUID) (*models.Workout, []models.WorkoutSet, error) {
	w, err := s.db.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, nil, err
	}
	sets, err := s.db.QuerySetsForWorkout(ctx, workoutID)
	if err != nil {
		return nil, nil, err
	}
	return w, sets, nil
}

// refreshWorkoutStatus re-derives a workout's status from its sets after a
// set transition. An unlogged set can reopen a completed workout, in which
// case the completion timestamp is cleared.
func (s *Service) refreshWorkoutStatus(ctx context.Context, workoutID uuid.UUID) error {
	w, err := s.db.GetWorkout(ctx, workoutID)
	if err != nil {
		return err
	}
	sets, err := s.db.QuerySetsForWorkout(ctx, workoutID)
	if err != nil {
		return err
	}

	derived := lifecycle.DeriveWorkoutStatus(w.Status, sets)
	completedAt := w.CompletedAt
	switch derived {
	case models.WorkoutCompleted:
		if completedAt == nil {
			now := time.Now().UTC()
			completedAt = &now
		}
	default:
		completedAt = nil
	}

	if derived == w.Status && equalTime(completedAt, w.CompletedAt) {
		return nil
	}
	return s.db.UpdateWorkoutStatus(ctx, workoutID, derived, completedAt)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ListExercises returns the exercise catalog.
func (s *Service) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return s.db.ListExercises(ctx)
}

// ExerciseHistory aggregates all of an exercise's completed sets into the
// chart/PR shape. An unknown exercise id yields (nil, nil): the "not
// found" decision belongs to the calling surface, which distinguishes it
// from a known exercise with no history yet.
func (s *Service) ExerciseHistory(ctx context.Context, exerciseID uuid.UUID) (*history.ExerciseHistory, error) {
	ex, err := s.db.GetExercise(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rows, err := s.db.QueryCompletedSetsForExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	h := history.Build(ex.ID, ex.Name, rows)
	return &h, nil
}

// NextWeekTargets computes every exercise's prescription for the given
// week of a mesocycle, from the prior week's logged performance. Week 1
// and never-attempted exercises fall back to base targets; the week past
// the plan's duration is the deload week.
func (s *Service) NextWeekTargets(ctx context.Context, mesocycleID uuid.UUID, weekNumber int) ([]models.WeekTargets, error) {
	meso, err := s.db.GetMesocycle(ctx, mesocycleID)
	if err != nil {
		return nil, err
	}
	if weekNumber < 1 || weekNumber > meso.TotalWeeks() {
		return nil, fmt.Errorf("%w: week %d is outside 1..%d", lifecycle.ErrInvalidValue, weekNumber, meso.TotalWeeks())
	}
	isDeload := weekNumber == meso.DeloadWeek()

	days, err := s.db.GetPlanDays(ctx, meso.PlanID)
	if err != nil {
		return nil, err
	}

	var targets []models.WeekTargets
	for _, day := range days {
		exercises, err := s.db.GetPlanExercises(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		for _, pe := range exercises {
			prev, err := s.previousPerformance(ctx, meso, day.ID, pe, weekNumber)
			if err != nil {
				return nil, err
			}
			t := progression.NextTargets(pe.Config, prev, isDeload)
			targets = append(targets, models.WeekTargets{
				ExerciseID:     pe.ExerciseID,
				PlanExerciseID: pe.ID,
				TargetWeight:   t.TargetWeight,
				TargetReps:     t.TargetReps,
				TargetSets:     t.TargetSets,
				WeekNumber:     weekNumber,
				IsDeload:       t.IsDeload,
				Reason:         string(t.Reason),
			})
		}
	}
	return targets, nil
}

// MaterializeWeek computes the week's targets and writes them into the
// already-generated pending sets of that week's workouts.
func (s *Service) MaterializeWeek(ctx context.Context, mesocycleID uuid.UUID, weekNumber int) ([]models.WeekTargets, error) {
	meso, err := s.db.GetMesocycle(ctx, mesocycleID)
	if err != nil {
		return nil, err
	}
	targets, err := s.NextWeekTargets(ctx, mesocycleID, weekNumber)
	if err != nil {
		return nil, err
	}

	// Index the target workouts by plan day so each exercise's targets
	// land in its own day's session.
	dayWorkout := make(map[uuid.UUID]uuid.UUID)
	workouts, err := s.db.QueryWorkoutsForWeek(ctx, mesocycleID, weekNumber)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		dayWorkout[w.PlanDayID] = w.ID
	}

	for _, t := range targets {
		pe, err := s.db.GetPlanExercise(ctx, t.PlanExerciseID)
		if err != nil {
			return nil, err
		}
		workoutID, ok := dayWorkout[pe.PlanDayID]
		if !ok {
			return nil, fmt.Errorf("no workout materialized for plan day %s week %d: %w",
				pe.PlanDayID, weekNumber, lifecycle.ErrNotFound)
		}
		if err := s.db.ApplyWeekTargets(ctx, workoutID, t); err != nil {
			return nil, err
		}
	}
	s.log.Info("week targets materialized",
		"mesocycle", meso.ID, "week", weekNumber, "exercises", len(targets))
	return targets, nil
}

// previousPerformance reduces the prior week's sets for one exercise into
// a PreviousWeekPerformance, threading in the best-set summaries of the
// weeks before that (newest-first) for failure-streak scanning. Returns
// nil when there is no prior week or it holds no completed sets.
func (s *Service) previousPerformance(ctx context.Context, meso *models.Mesocycle, planDayID uuid.UUID, pe models.PlanExercise, forWeek int) (*progression.PreviousWeekPerformance, error) {
	prevWeek := forWeek - 1
	if prevWeek < 1 {
		return nil, nil
	}

	sets, err := s.setsForWeek(ctx, meso.ID, planDayID, pe.ExerciseID, prevWeek)
	if err != nil {
		return nil, err
	}

	// Best-set summaries of earlier weeks, newest-first. A week with no
	// completed sets breaks consecutiveness, so the scan stops there.
	var prior []progression.WeekSummary
	for week := prevWeek - 1; week >= 1; week-- {
		earlier, err := s.setsForWeek(ctx, meso.ID, planDayID, pe.ExerciseID, week)
		if err != nil {
			return nil, err
		}
		best := progression.BestSet(earlier)
		if best == nil {
			break
		}
		prior = append(prior, progression.WeekSummary{
			ActualWeight: *best.ActualWeight,
			ActualReps:   *best.ActualReps,
		})
	}

	return progression.Reduce(sets, prevWeek, pe.Config, prior), nil
}

func (s *Service) setsForWeek(ctx context.Context, mesocycleID, planDayID, exerciseID uuid.UUID, week int) ([]models.WorkoutSet, error) {
	w, err := s.db.FindWorkout(ctx, mesocycleID, planDayID, week)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.db.QuerySetsForExerciseInWorkout(ctx, w.ID, exerciseID)
}
