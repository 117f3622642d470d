package pkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	uniqueErr := fmt.Errorf("insert workout: %w", &pgconn.PgError{Code: "23505"})
	fkErr := &pgconn.PgError{Code: "23503"}
	serializationErr := &pgconn.PgError{Code: "40001"}
	deadlockErr := fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"})

	assert.True(t, IsUniqueViolationError(uniqueErr))
	assert.False(t, IsUniqueViolationError(fkErr))
	assert.True(t, IsForeignKeyViolationError(fkErr))
	assert.False(t, IsForeignKeyViolationError(errors.New("23503")))

	assert.True(t, IsRetryableError(serializationErr))
	assert.True(t, IsRetryableError(deadlockErr))
	assert.False(t, IsRetryableError(uniqueErr))
	assert.False(t, IsRetryableError(errors.New("boom")))
}
