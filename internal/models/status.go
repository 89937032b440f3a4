package models

import "strings"

// MesocycleStatus is the lifecycle state of a training block.
type MesocycleStatus string

const (
	MesoPending   MesocycleStatus = "pending"
	MesoActive    MesocycleStatus = "active"
	MesoCompleted MesocycleStatus = "completed"
	MesoCancelled MesocycleStatus = "cancelled"
)

// Valid reports whether s is a recognized mesocycle status.
func (s MesocycleStatus) Valid() bool {
	switch s {
	case MesoPending, MesoActive, MesoCompleted, MesoCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s MesocycleStatus) Terminal() bool {
	return s == MesoCompleted || s == MesoCancelled
}

// WorkoutStatus is the lifecycle state of a scheduled session.
type WorkoutStatus string

const (
	WorkoutPending    WorkoutStatus = "pending"
	WorkoutInProgress WorkoutStatus = "in_progress"
	WorkoutCompleted  WorkoutStatus = "completed"
	WorkoutSkipped    WorkoutStatus = "skipped"
)

// Valid reports whether s is a recognized workout status.
func (s WorkoutStatus) Valid() bool {
	switch s {
	case WorkoutPending, WorkoutInProgress, WorkoutCompleted, WorkoutSkipped:
		return true
	}
	return false
}

// SetStatus is the lifecycle state of a single prescribed set.
type SetStatus string

const (
	SetPending   SetStatus = "pending"
	SetCompleted SetStatus = "completed"
	SetSkipped   SetStatus = "skipped"
)

// Valid reports whether s is a recognized set status.
func (s SetStatus) Valid() bool {
	switch s {
	case SetPending, SetCompleted, SetSkipped:
		return true
	}
	return false
}

// ParseMesocycleStatus normalizes a raw status string (any casing,
// surrounding whitespace tolerated). Returns the status and true if
// recognized, or the original string and false if unknown.
func ParseMesocycleStatus(raw string) (MesocycleStatus, bool) {
	s := MesocycleStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}
