package workout

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrDuplicateDraft is returned by Tx.InsertWorkout when a workout was
	// already stored for the same draft.
	ErrDuplicateDraft = errors.New("workout already saved for this draft")
	// ErrTransient marks store errors worth retrying, like a dropped
	// connection or a serialization failure.
	ErrTransient = errors.New("transient store error")
)

// Store is the external data store holding workouts, exercises and sets.
type Store interface {
	// InTx runs fn in a single transaction. It commits when fn returns nil
	// and rolls back otherwise, ctx cancellation included.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	GetWorkout(ctx context.Context, id int64) (*Workout, error)
	GetWorkoutByDraftID(ctx context.Context, draftID string) (*Workout, error)
	ListWorkouts(ctx context.Context, params ListParams) ([]Workout, error)
	DeleteWorkout(ctx context.Context, ownerID, id int64) error
}

// Tx writes rows inside a Store transaction.
type Tx interface {
	InsertWorkout(ctx context.Context, w *Workout) (int64, error)
	InsertExercise(ctx context.Context, workoutID int64, e *Exercise) (int64, error)
	// InsertSets writes all sets of one exercise. On failure the error wraps
	// a *SetInsertError naming the failed set.
	InsertSets(ctx context.Context, exerciseID int64, sets []Set) ([]int64, error)
}

// ListParams selects workouts newest first. OwnerID limits the list to one
// owner; Feed lists public workouts of everyone except ExcludeOwnerID.
type ListParams struct {
	OwnerID        int64
	Feed           bool
	ExcludeOwnerID int64
	Limit          int
	Offset         int
}

// SetInsertError reports which set of a batch failed to insert.
type SetInsertError struct {
	// Index is 0-based within the batch.
	Index int
	Err   error
}

func (e *SetInsertError) Error() string {
	return fmt.Sprintf("insert set %d: %s", e.Index, e.Err)
}

func (e *SetInsertError) Unwrap() error {
	return e.Err
}
