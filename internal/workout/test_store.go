package workout

import (
	"context"
	"slices"
	"sort"
	"sync"
)

var _ Store = (*TestStore)(nil)

// TestStore is an in-memory Store used in tests. Writes become visible only
// when the transaction commits.
type TestStore struct {
	mutex    sync.Mutex
	lastID   int64
	workouts map[int64]*Workout
	calls    int

	// FaultFunc is asked before every row write inside a transaction. n is the
	// 1-based count of rows of that stage written so far in the transaction,
	// the current one included. A non-nil error fails the write.
	FaultFunc func(stage Stage, n int) error
	// CommitErrors are returned, one per transaction, instead of committing.
	CommitErrors []error
	// ReadErr fails every read.
	ReadErr error
}

func NewTestStore() *TestStore {
	return &TestStore{
		workouts: make(map[int64]*Workout),
	}
}

// Calls returns how many times the store was used.
func (s *TestStore) Calls() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.calls
}

// Count returns the number of committed workouts, exercises and sets.
func (s *TestStore) Count() (workouts, exercises, sets int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, w := range s.workouts {
		workouts++
		for _, e := range w.Exercises {
			exercises++
			sets += len(e.Sets)
		}
	}
	return workouts, exercises, sets
}

func (s *TestStore) nextID() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastID++
	return s.lastID
}

func (s *TestStore) countCall() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.calls++
}

func (s *TestStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.countCall()
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &testTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.CommitErrors) > 0 {
		err := s.CommitErrors[0]
		s.CommitErrors = s.CommitErrors[1:]
		return err
	}
	for _, w := range tx.workouts {
		for _, stored := range s.workouts {
			if stored.DraftID == w.DraftID {
				return ErrDuplicateDraft
			}
		}
	}

	for _, w := range tx.workouts {
		w.Exercises = nil
		for _, e := range tx.exercises {
			if e.WorkoutID != w.ID {
				continue
			}
			e.Sets = nil
			for _, set := range tx.sets {
				if set.ExerciseID == e.ID {
					e.Sets = append(e.Sets, set)
				}
			}
			w.Exercises = append(w.Exercises, e)
		}
		s.workouts[w.ID] = w
	}
	return nil
}

func (s *TestStore) GetWorkout(ctx context.Context, id int64) (*Workout, error) {
	s.countCall()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	w, ok := s.workouts[id]
	if !ok {
		return nil, ErrWorkoutNotFound
	}
	return sortedCopy(w), nil
}

func (s *TestStore) GetWorkoutByDraftID(ctx context.Context, draftID string) (*Workout, error) {
	s.countCall()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	for _, w := range s.workouts {
		if w.DraftID == draftID {
			return sortedCopy(w), nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func (s *TestStore) ListWorkouts(ctx context.Context, params ListParams) ([]Workout, error) {
	s.countCall()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.ReadErr != nil {
		return nil, s.ReadErr
	}

	workouts := make([]Workout, 0)
	for _, w := range s.workouts {
		if params.Feed {
			if !w.IsPublic || w.OwnerID == params.ExcludeOwnerID {
				continue
			}
		} else if w.OwnerID != params.OwnerID {
			continue
		}
		workouts = append(workouts, *sortedCopy(w))
	}
	sort.Slice(workouts, func(i, j int) bool {
		if workouts[i].CreatedAt.Equal(workouts[j].CreatedAt) {
			return workouts[i].ID > workouts[j].ID
		}
		return workouts[i].CreatedAt.After(workouts[j].CreatedAt)
	})

	if params.Offset > 0 {
		if params.Offset >= len(workouts) {
			return []Workout{}, nil
		}
		workouts = workouts[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(workouts) {
		workouts = workouts[:params.Limit]
	}
	return workouts, nil
}

func (s *TestStore) DeleteWorkout(ctx context.Context, ownerID, id int64) error {
	s.countCall()
	s.mutex.Lock()
	defer s.mutex.Unlock()

	w, ok := s.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return ErrWorkoutNotFound
	}
	delete(s.workouts, id)
	return nil
}

type testTx struct {
	store     *TestStore
	workouts  []*Workout
	exercises []Exercise
	sets      []Set
}

func (tx *testTx) fault(stage Stage, n int) error {
	if tx.store.FaultFunc == nil {
		return nil
	}
	return tx.store.FaultFunc(stage, n)
}

func (tx *testTx) InsertWorkout(ctx context.Context, w *Workout) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := tx.fault(StageWorkout, len(tx.workouts)+1); err != nil {
		return 0, err
	}

	row := *w
	row.ID = tx.store.nextID()
	row.Categories = slices.Clone(w.Categories)
	tx.workouts = append(tx.workouts, &row)
	return row.ID, nil
}

func (tx *testTx) InsertExercise(ctx context.Context, workoutID int64, e *Exercise) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := tx.fault(StageExercise, len(tx.exercises)+1); err != nil {
		return 0, err
	}

	row := *e
	row.ID = tx.store.nextID()
	row.WorkoutID = workoutID
	row.MuscleGroups = slices.Clone(e.MuscleGroups)
	row.PrimaryMuscles = slices.Clone(e.PrimaryMuscles)
	row.SecondaryMuscles = slices.Clone(e.SecondaryMuscles)
	tx.exercises = append(tx.exercises, row)
	return row.ID, nil
}

func (tx *testTx) InsertSets(ctx context.Context, exerciseID int64, sets []Set) ([]int64, error) {
	ids := make([]int64, 0, len(sets))
	for i, set := range sets {
		if err := ctx.Err(); err != nil {
			return nil, &SetInsertError{Index: i, Err: err}
		}
		if err := tx.fault(StageSet, len(tx.sets)+1); err != nil {
			return nil, &SetInsertError{Index: i, Err: err}
		}
		set.ID = tx.store.nextID()
		set.ExerciseID = exerciseID
		tx.sets = append(tx.sets, set)
		ids = append(ids, set.ID)
	}
	return ids, nil
}

func sortedCopy(w *Workout) *Workout {
	c := *w
	c.Categories = slices.Clone(w.Categories)
	c.Exercises = make([]Exercise, len(w.Exercises))
	for i, e := range w.Exercises {
		e.Sets = slices.Clone(e.Sets)
		sort.Slice(e.Sets, func(a, b int) bool {
			return e.Sets[a].OrderInExercise < e.Sets[b].OrderInExercise
		})
		c.Exercises[i] = e
	}
	sort.Slice(c.Exercises, func(a, b int) bool {
		return c.Exercises[a].OrderInWorkout < c.Exercises[b].OrderInWorkout
	})
	return &c
}
