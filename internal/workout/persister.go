package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workout/draft"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultMaxSaveAttempts = 3

// Persister turns validated drafts into stored workouts and reads them back.
// It holds no mutable state and is safe for concurrent use.
type Persister struct {
	store          Store
	metricsManager *metrics.Manager

	MaxSaveAttempts int
	// ability to inject the retry schedule and the clock (for unit testing)
	NewBackOff func() backoff.BackOff
	Now        func() time.Time
}

func NewPersister(store Store, metricsManager *metrics.Manager) *Persister {
	return &Persister{
		store:           store,
		metricsManager:  metricsManager,
		MaxSaveAttempts: DefaultMaxSaveAttempts,
		NewBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
		Now: time.Now,
	}
}

// Save validates the draft and stores the workout with all its exercises and
// sets in one transaction. It returns ErrUnauthenticated, a
// *draft.ValidationError or a *StoreWriteError on failure; in the first two
// cases the store is not touched. Saving the same draft twice returns the
// workout stored the first time.
func (p *Persister) Save(ctx context.Context, ownerID int64, d *draft.WorkoutDraft) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persister.workout.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}
	if d == nil {
		d = &draft.WorkoutDraft{}
	}
	if verr := d.Validate(); verr != nil {
		span.SetAttributes(attribute.String("validation.rule", string(verr.Rule)))
		return nil, verr
	}

	w := FromDraft(ownerID, d, p.Now().UTC())
	span.SetAttributes(
		attribute.Int64("owner.id", ownerID),
		attribute.String("draft.id", w.DraftID),
		attribute.Int("exercises", len(w.Exercises)),
	)

	defer func(begin time.Time) {
		p.metricsManager.HistWorkoutSaveDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())

	attempt := 0
	var lastErr error
	operation := func() error {
		attempt++
		if attempt > 1 {
			p.metricsManager.CounterWorkoutSaveRetries.Inc()
			log.Warnf("retrying save of draft %s, attempt %d: %s", w.DraftID, attempt, lastErr)
		}

		lastErr = p.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
			return writeWorkout(ctx, tx, w)
		})
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrTransient) && ctx.Err() == nil {
			return lastErr
		}
		return backoff.Permanent(lastErr)
	}

	maxRetries := p.MaxSaveAttempts - 1
	if maxRetries < 0 {
		maxRetries = 0
	}
	retryErr := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(p.NewBackOff(), uint64(maxRetries)),
		ctx,
	))
	if retryErr == nil {
		p.metricsManager.CounterWorkoutsSaved.Inc()
		log.Debugf("workout %d saved for owner %d [draft %s]", w.ID, ownerID, w.DraftID)
		return w, nil
	}
	if lastErr == nil {
		lastErr = retryErr
	}

	if errors.Is(lastErr, ErrDuplicateDraft) {
		existing, getErr := p.store.GetWorkoutByDraftID(ctx, w.DraftID)
		switch {
		case getErr != nil:
			log.Errorf("draft %s already saved, but could not load it: %s", w.DraftID, getErr)
		case existing.OwnerID != ownerID:
			log.Warnf("draft %s already saved by owner %d, refusing it for owner %d", w.DraftID, existing.OwnerID, ownerID)
		default:
			log.Infof("draft %s already saved as workout %d", w.DraftID, existing.ID)
			return existing, nil
		}
	}

	var writeErr *StoreWriteError
	if !errors.As(lastErr, &writeErr) {
		writeErr = &StoreWriteError{Stage: StageWorkout, Cause: lastErr}
	}

	p.metricsManager.CounterWorkoutSaveFailures.WithLabelValues(string(writeErr.Stage)).Inc()
	log.WithFields(log.Fields{
		"stage":    writeErr.Stage,
		"exercise": writeErr.ExercisePosition,
		"set":      writeErr.SetPosition,
		"draft":    w.DraftID,
		"attempts": attempt,
	}).Errorf("failed to save workout: %s", writeErr.Cause)

	return nil, writeErr
}

func writeWorkout(ctx context.Context, tx Tx, w *Workout) error {
	workoutID, err := tx.InsertWorkout(ctx, w)
	if err != nil {
		return &StoreWriteError{Stage: StageWorkout, Cause: err}
	}
	w.ID = workoutID

	for i := range w.Exercises {
		e := &w.Exercises[i]
		e.WorkoutID = workoutID

		exerciseID, err := tx.InsertExercise(ctx, workoutID, e)
		if err != nil {
			return &StoreWriteError{Stage: StageExercise, ExercisePosition: i + 1, Cause: err}
		}
		e.ID = exerciseID

		for j := range e.Sets {
			e.Sets[j].ExerciseID = exerciseID
		}
		setIDs, err := tx.InsertSets(ctx, exerciseID, e.Sets)
		if err != nil {
			writeErr := &StoreWriteError{Stage: StageSet, ExercisePosition: i + 1, Cause: err}
			var setErr *SetInsertError
			if errors.As(err, &setErr) {
				writeErr.SetPosition = setErr.Index + 1
			}
			return writeErr
		}
		if len(setIDs) != len(e.Sets) {
			return &StoreWriteError{
				Stage:            StageSet,
				ExercisePosition: i + 1,
				Cause:            fmt.Errorf("stored %d of %d sets", len(setIDs), len(e.Sets)),
			}
		}
		for j := range e.Sets {
			e.Sets[j].ID = setIDs[j]
		}
	}

	return nil
}

// History returns the owner's workouts newest first, with exercises and sets
// in their recorded order. A non-positive limit returns all of them.
func (p *Persister) History(ctx context.Context, ownerID int64, limit, offset int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persister.workout.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}
	span.SetAttributes(attribute.Int64("owner.id", ownerID), attribute.Int("limit", limit))

	workouts, err := p.store.ListWorkouts(ctx, ListParams{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, &StoreReadError{Op: "history", Cause: err}
	}
	return workouts, nil
}

// Get returns one workout. Private workouts of other users are reported as
// not found.
func (p *Persister) Get(ctx context.Context, ownerID, id int64) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persister.workout.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}
	span.SetAttributes(attribute.Int64("workout.id", id))

	w, err := p.store.GetWorkout(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, &StoreReadError{Op: "get", Cause: err}
	}
	if w.OwnerID != ownerID && !w.IsPublic {
		return nil, ErrWorkoutNotFound
	}
	return w, nil
}

// Feed returns public workouts of everyone but the viewer, newest first.
func (p *Persister) Feed(ctx context.Context, viewerID int64, limit, offset int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persister.workout.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if viewerID <= 0 {
		return nil, ErrUnauthenticated
	}

	workouts, err := p.store.ListWorkouts(ctx, ListParams{
		Feed:           true,
		ExcludeOwnerID: viewerID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, &StoreReadError{Op: "feed", Cause: err}
	}
	return workouts, nil
}

// Delete removes one of the owner's workouts with its exercises and sets.
func (p *Persister) Delete(ctx context.Context, ownerID, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "persister.workout.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if ownerID <= 0 {
		return ErrUnauthenticated
	}
	span.SetAttributes(attribute.Int64("workout.id", id))

	if err := p.store.DeleteWorkout(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return ErrWorkoutNotFound
		}
		return &StoreWriteError{Stage: StageWorkout, Cause: err}
	}
	return nil
}
