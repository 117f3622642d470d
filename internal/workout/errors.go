package workout

import (
	"errors"
	"fmt"
)

var ErrUnauthenticated = errors.New("no authenticated user")

// Stage names the write that failed while saving a workout.
type Stage string

const (
	StageWorkout  Stage = "workout"
	StageExercise Stage = "exercise"
	StageSet      Stage = "set"
)

// StoreWriteError is returned when saving a workout failed in the store.
// Nothing of the workout is left behind when it is returned.
type StoreWriteError struct {
	Stage Stage
	// ExercisePosition and SetPosition are 1-based, 0 when not applicable.
	ExercisePosition int
	SetPosition      int
	Cause            error
}

func (e *StoreWriteError) Error() string {
	switch e.Stage {
	case StageExercise:
		return fmt.Sprintf("store write failed at exercise %d: %s", e.ExercisePosition, e.Cause)
	case StageSet:
		return fmt.Sprintf("store write failed at set %d of exercise %d: %s", e.SetPosition, e.ExercisePosition, e.Cause)
	default:
		return fmt.Sprintf("store write failed at %s: %s", e.Stage, e.Cause)
	}
}

func (e *StoreWriteError) Unwrap() error {
	return e.Cause
}

// StoreReadError is returned when workouts could not be loaded. It is
// distinct from an empty result.
type StoreReadError struct {
	Op    string
	Cause error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("store read failed [%s]: %s", e.Op, e.Cause)
}

func (e *StoreReadError) Unwrap() error {
	return e.Cause
}
