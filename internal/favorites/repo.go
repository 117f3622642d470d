// Package favorites stores the catalog exercises a user starred.
package favorites

import (
	"context"
	"fmt"

	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

// List returns the favorite exercise ids of a user, most recently added first.
func (r *PsqlRepo) List(ctx context.Context, userID int64) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT exercise_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC, exercise_id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect favorites: %w", err)
	}
	return ids, nil
}

// Add is idempotent, adding an existing favorite keeps its original time.
func (r *PsqlRepo) Add(ctx context.Context, userID int64, exerciseID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.String("exercise.id", exerciseID),
	)

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO favorites (user_id, exercise_id, created_at) VALUES ($1, $2, now())
			ON CONFLICT (user_id, exercise_id) DO NOTHING;`,
		userID, exerciseID,
	); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove reports whether the favorite existed.
func (r *PsqlRepo) Remove(ctx context.Context, userID int64, exerciseID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.favorites.remove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", userID),
		attribute.String("exercise.id", exerciseID),
	)

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND exercise_id = $2;`,
		userID, exerciseID,
	)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
