// Package drafts keeps workout drafts in redis between the HTTP calls that
// compose them, and turns submitted drafts into saved workouts.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workout/draft"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultTTL       = 24 * time.Hour
	DefaultLockTTL   = 30 * time.Second
	draftKeyPrefix   = "gymlog-draft||"
	submitLockPrefix = "gymlog-draft-submit||"
)

var (
	ErrDraftNotFound    = errors.New("draft not found")
	ErrDraftConflict    = errors.New("draft was changed concurrently")
	ErrSubmitInProgress = errors.New("draft submit already in progress")
)

// RedisStore keeps drafts as JSON under an owner scoped key, so a draft id
// guessed by another user resolves to nothing.
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
	lockTTL     time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		redisClient: redisClient,
		ttl:         ttl,
		lockTTL:     DefaultLockTTL,
	}
}

func draftKey(ownerID int64, draftID string) string {
	return fmt.Sprintf("%s%d|%s", draftKeyPrefix, ownerID, draftID)
}

func submitLockKey(ownerID int64, draftID string) string {
	return fmt.Sprintf("%s%d|%s", submitLockPrefix, ownerID, draftID)
}

func (s *RedisStore) Create(ctx context.Context, ownerID int64, d *draft.WorkoutDraft) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "drafts.store.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("draft.id", d.ID))

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.redisClient.Set(ctx, draftKey(ownerID, d.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, ownerID int64, draftID string) (_ *draft.WorkoutDraft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "drafts.store.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("draft.id", draftID))

	data, err := s.redisClient.Get(ctx, draftKey(ownerID, draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return unmarshalDraft(data)
}

// Update loads the draft, runs fn on it and writes it back, unless another
// writer touched the draft in between (ErrDraftConflict). An error from fn
// leaves the stored draft unchanged. The returned draft is a copy of what was
// written and shares nothing with the value fn saw.
func (s *RedisStore) Update(
	ctx context.Context,
	ownerID int64,
	draftID string,
	fn func(d *draft.WorkoutDraft) error,
) (_ *draft.WorkoutDraft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "drafts.store.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("draft.id", draftID))

	key := draftKey(ownerID, draftID)
	var updated *draft.WorkoutDraft
	err = s.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrDraftNotFound
			}
			return fmt.Errorf("get draft: %w", err)
		}

		d, err := unmarshalDraft(data)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		if data, err = json.Marshal(d); err != nil {
			return fmt.Errorf("marshal draft: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = d.Clone()
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrDraftConflict
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete reports whether the draft existed.
func (s *RedisStore) Delete(ctx context.Context, ownerID int64, draftID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "drafts.store.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("draft.id", draftID))

	deleted, err := s.redisClient.Del(ctx, draftKey(ownerID, draftID)).Result()
	if err != nil {
		return false, fmt.Errorf("delete draft: %w", err)
	}
	return deleted > 0, nil
}

// LockSubmit takes the submit lock of a draft. The returned func releases it;
// a crashed holder loses the lock after the lock TTL.
func (s *RedisStore) LockSubmit(ctx context.Context, ownerID int64, draftID string) (_ func(context.Context) error, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "drafts.store.lock_submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	key := submitLockKey(ownerID, draftID)
	acquired, err := s.redisClient.SetNX(ctx, key, time.Now().Unix(), s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("lock submit: %w", err)
	}
	if !acquired {
		return nil, ErrSubmitInProgress
	}

	return func(ctx context.Context) error {
		return s.redisClient.Del(ctx, key).Err()
	}, nil
}

func unmarshalDraft(data []byte) (*draft.WorkoutDraft, error) {
	var d draft.WorkoutDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &d, nil
}
