package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*PsqlStore)(nil)

type PsqlStore struct {
	db *pgxpool.Pool
}

func NewPsqlStore(db *pgxpool.Pool) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

func (s *PsqlStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.tx")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(ctx, &psqlTx{tx: tx})
	})
	return classify(err)
}

// classify marks errors the caller can act on: a second workout for the
// same draft and failures after which the transaction can be run again.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if pkg.IsUniqueViolationError(err) {
		return markDuplicate(err)
	}
	if pkg.IsRetryableError(err) {
		return markTransient(err)
	}
	return err
}

func markDuplicate(err error) error {
	var writeErr *StoreWriteError
	if errors.As(err, &writeErr) && writeErr.Stage != StageWorkout {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDuplicateDraft, err)
}

func markTransient(err error) error {
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

type psqlTx struct {
	tx pgx.Tx
}

func (t *psqlTx) InsertWorkout(ctx context.Context, w *Workout) (int64, error) {
	var id int64
	if err := t.tx.QueryRow(
		ctx,
		`INSERT INTO workouts
				(owner_id, draft_id, name, duration, categories, is_public, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
		w.OwnerID, w.DraftID, w.Name, w.Duration, w.Categories, w.IsPublic, w.CreatedAt,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (t *psqlTx) InsertExercise(ctx context.Context, workoutID int64, e *Exercise) (int64, error) {
	var id int64
	if err := t.tx.QueryRow(
		ctx,
		`INSERT INTO exercises
				(workout_id, name, order_in_workout, muscle_groups, level, primary_muscles,
				 secondary_muscles, category, equipment, force, mechanic)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id;`,
		workoutID, e.Name, e.OrderInWorkout, e.MuscleGroups, e.Level, e.PrimaryMuscles,
		e.SecondaryMuscles, e.Category, e.Equipment, e.Force, e.Mechanic,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (t *psqlTx) InsertSets(ctx context.Context, exerciseID int64, sets []Set) ([]int64, error) {
	batch := &pgx.Batch{}
	for _, set := range sets {
		batch.Queue(
			`INSERT INTO sets (exercise_id, weight, reps, order_in_exercise) VALUES ($1, $2, $3, $4) RETURNING id;`,
			exerciseID, set.Weight, set.Reps, set.OrderInExercise,
		)
	}

	results := t.tx.SendBatch(ctx, batch)
	ids := make([]int64, 0, len(sets))
	for i := range sets {
		var id int64
		if err := results.QueryRow().Scan(&id); err != nil {
			_ = results.Close()
			return nil, &SetInsertError{Index: i, Err: err}
		}
		ids = append(ids, id)
	}
	if err := results.Close(); err != nil {
		return nil, &SetInsertError{Index: len(sets) - 1, Err: err}
	}
	return ids, nil
}

func (s *PsqlStore) GetWorkout(ctx context.Context, id int64) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("workout.id", id))

	return s.getOne(ctx, `WHERE w.id = $1`, id)
}

func (s *PsqlStore) GetWorkoutByDraftID(ctx context.Context, draftID string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.get_by_draft")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("draft.id", draftID))

	return s.getOne(ctx, `WHERE w.draft_id = $1`, draftID)
}

func (s *PsqlStore) getOne(ctx context.Context, where string, arg any) (*Workout, error) {
	rows, err := s.db.Query(ctx, selectWorkouts+where+`;`, arg)
	if err != nil {
		return nil, err
	}
	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	if err := s.loadExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

func (s *PsqlStore) ListWorkouts(ctx context.Context, params ListParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Bool("feed", params.Feed),
		attribute.Int("limit", params.Limit),
		attribute.Int("offset", params.Offset),
	)

	var rows pgx.Rows
	if params.Feed {
		rows, err = s.db.Query(
			ctx,
			selectWorkouts+`
			WHERE w.is_public AND w.owner_id <> $1
			ORDER BY w.created_at DESC, w.id DESC
			LIMIT NULLIF($2, 0) OFFSET $3;`,
			params.ExcludeOwnerID, max(params.Limit, 0), max(params.Offset, 0),
		)
	} else {
		rows, err = s.db.Query(
			ctx,
			selectWorkouts+`
			WHERE w.owner_id = $1
			ORDER BY w.created_at DESC, w.id DESC
			LIMIT NULLIF($2, 0) OFFSET $3;`,
			params.OwnerID, max(params.Limit, 0), max(params.Offset, 0),
		)
	}
	if err != nil {
		return nil, err
	}

	workouts, err := rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *PsqlStore) DeleteWorkout(ctx context.Context, ownerID, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("workout.id", id))

	tag, err := s.db.Exec(
		ctx,
		`DELETE FROM workouts WHERE id = $1 AND owner_id = $2;`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

const selectWorkouts = `
			SELECT
				w.id, w.owner_id, w.draft_id::text, w.name, w.duration, w.categories, w.is_public, w.created_at
			FROM workouts w
			`

func rows2workouts(rows pgx.Rows) ([]Workout, error) {
	defer rows.Close()

	workouts := make([]Workout, 0)
	for rows.Next() {
		var w Workout
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.DraftID, &w.Name, &w.Duration, &w.Categories, &w.IsPublic, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.CreatedAt = w.CreatedAt.UTC()
		w.Exercises = make([]Exercise, 0)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// loadExercises fills exercises and sets of the given workouts with two
// queries, keeping order_in_workout and order_in_exercise.
func (s *PsqlStore) loadExercises(ctx context.Context, workouts []Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	workoutIDs := make([]int64, len(workouts))
	byWorkout := make(map[int64]int, len(workouts))
	for i, w := range workouts {
		workoutIDs[i] = w.ID
		byWorkout[w.ID] = i
	}

	rows, err := s.db.Query(
		ctx,
		`
			SELECT
				id, workout_id, name, order_in_workout, muscle_groups, level, primary_muscles,
				secondary_muscles, category, equipment, force, mechanic
			FROM exercises
			WHERE workout_id = ANY($1)
			ORDER BY workout_id, order_in_workout;`,
		workoutIDs,
	)
	if err != nil {
		return fmt.Errorf("query exercises: %w", err)
	}

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.WorkoutID, &e.Name, &e.OrderInWorkout, &e.MuscleGroups, &e.Level, &e.PrimaryMuscles,
			&e.SecondaryMuscles, &e.Category, &e.Equipment, &e.Force, &e.Mechanic,
		); err != nil {
			rows.Close()
			return fmt.Errorf("exercises scan: %w", err)
		}
		e.Sets = make([]Set, 0)
		exercises = append(exercises, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(exercises) == 0 {
		return nil
	}

	exerciseIDs := make([]int64, len(exercises))
	byExercise := make(map[int64]int, len(exercises))
	for i, e := range exercises {
		exerciseIDs[i] = e.ID
		byExercise[e.ID] = i
	}

	rows, err = s.db.Query(
		ctx,
		`
			SELECT id, exercise_id, weight::float8, reps, order_in_exercise
			FROM sets
			WHERE exercise_id = ANY($1)
			ORDER BY exercise_id, order_in_exercise;`,
		exerciseIDs,
	)
	if err != nil {
		return fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var set Set
		if err := rows.Scan(&set.ID, &set.ExerciseID, &set.Weight, &set.Reps, &set.OrderInExercise); err != nil {
			return fmt.Errorf("sets scan: %w", err)
		}
		e := &exercises[byExercise[set.ExerciseID]]
		e.Sets = append(e.Sets, set)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, e := range exercises {
		w := &workouts[byWorkout[e.WorkoutID]]
		w.Exercises = append(w.Exercises, e)
	}
	return nil
}
