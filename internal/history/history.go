// Package history reduces all-time completed sets into the chart- and
// PR-ready shape the read-only views consume. Like the progression engine
// it is pure: rows in, aggregate out, no I/O.
package history

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
)

// Set is one logged set within a session entry.
type Set struct {
	SetNumber int     `json:"set_number"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

// Entry is one training session for the exercise, in chronological order.
type Entry struct {
	WorkoutID   uuid.UUID `json:"workout_id"`
	Date        time.Time `json:"date"`
	WeekNumber  int       `json:"week_number"`
	MesocycleID uuid.UUID `json:"mesocycle_id"`
	Sets        []Set     `json:"sets"`
	BestWeight  float64   `json:"best_weight"`
	BestSetReps int       `json:"best_set_reps"`
}

// PersonalRecord is the all-time heaviest best set. The reps are the ones
// logged the first time that weight was achieved, not the best reps ever
// recorded at it.
type PersonalRecord struct {
	Weight float64   `json:"weight"`
	Reps   int       `json:"reps"`
	Date   time.Time `json:"date"`
}

// ExerciseHistory is the full aggregate for one exercise. A known exercise
// with no logged sets yields empty entries and a nil record; "exercise does
// not exist" is the caller's distinction and is represented as a nil
// *ExerciseHistory at the service layer.
type ExerciseHistory struct {
	ExerciseID     uuid.UUID       `json:"exercise_id"`
	ExerciseName   string          `json:"exercise_name"`
	Entries        []Entry         `json:"entries"`
	PersonalRecord *PersonalRecord `json:"personal_record"`
}

// Build groups completed set rows into one entry per workout, orders the
// entries by session date ascending, and computes the all-time personal
// record. Rows for other exercises must already be filtered out by the
// caller.
func Build(exerciseID uuid.UUID, exerciseName string, rows []models.CompletedSetRow) ExerciseHistory {
	h := ExerciseHistory{
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		Entries:      []Entry{},
	}

	byWorkout := make(map[uuid.UUID]*Entry)
	var order []uuid.UUID

	for _, r := range rows {
		e, ok := byWorkout[r.WorkoutID]
		if !ok {
			e = &Entry{
				WorkoutID:   r.WorkoutID,
				Date:        r.SessionDate(),
				WeekNumber:  r.WeekNumber,
				MesocycleID: r.MesocycleID,
			}
			byWorkout[r.WorkoutID] = e
			order = append(order, r.WorkoutID)
		}
		e.Sets = append(e.Sets, Set{SetNumber: r.SetNumber, Weight: r.ActualWeight, Reps: r.ActualReps})
	}

	for _, id := range order {
		e := byWorkout[id]
		sort.Slice(e.Sets, func(i, j int) bool { return e.Sets[i].SetNumber < e.Sets[j].SetNumber })
		best := e.Sets[0]
		for _, s := range e.Sets[1:] {
			if s.Weight > best.Weight || (s.Weight == best.Weight && s.Reps > best.Reps) {
				best = s
			}
		}
		e.BestWeight = best.Weight
		e.BestSetReps = best.Reps
		h.Entries = append(h.Entries, *e)
	}

	sort.SliceStable(h.Entries, func(i, j int) bool { return h.Entries[i].Date.Before(h.Entries[j].Date) })

	// Personal record: scanning in date order with a strict comparison
	// keeps the earliest session a weight was first achieved, along with
	// the reps logged there.
	for _, e := range h.Entries {
		if len(e.Sets) == 0 {
			continue
		}
		if h.PersonalRecord == nil || e.BestWeight > h.PersonalRecord.Weight {
			h.PersonalRecord = &PersonalRecord{Weight: e.BestWeight, Reps: e.BestSetReps, Date: e.Date}
		}
	}

	return h
}
