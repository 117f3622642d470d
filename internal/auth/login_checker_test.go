package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/2beens/gymlog/internal/auth"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginChecker_Identify(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := auth.NewLoginChecker(time.Hour, db)
	require.NotNil(t, loginChecker)

	ctx := context.Background()

	mock.ExpectGet(testSessionKeyPrefix + "invalid token").RedisNil()
	identity, isLogged, err := loginChecker.Identify(ctx, "invalid token")
	require.NoError(t, err)
	assert.False(t, isLogged)
	assert.Zero(t, identity)

	testToken := "test-token"
	now := time.Now()
	mock.ExpectGet(testSessionKeyPrefix + testToken).SetVal(fmt.Sprintf("%d|%d|%s", now.Unix(), testUserID, testUsername))
	identity, isLogged, err = loginChecker.Identify(ctx, testToken)
	require.NoError(t, err)
	assert.True(t, isLogged)
	assert.Equal(t, auth.Identity{UserID: testUserID, Username: testUsername}, identity)

	// served from memory, redis is not asked again
	identity, isLogged, err = loginChecker.Identify(ctx, testToken)
	require.NoError(t, err)
	assert.True(t, isLogged)
	assert.Equal(t, testUserID, identity.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())

	loginChecker.Forget(testToken)
	mock.ExpectGet(testSessionKeyPrefix + testToken).RedisNil()
	_, isLogged, err = loginChecker.Identify(ctx, testToken)
	require.NoError(t, err)
	assert.False(t, isLogged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginChecker_Identify_Expired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := auth.NewLoginChecker(time.Hour, db)
	now := time.Now()
	loginChecker.Now = func() time.Time { return now }

	mock.ExpectGet(testSessionKeyPrefix + "tkn").SetVal(fmt.Sprintf("%d|1|ana", now.Add(-30*time.Minute).Unix()))
	_, isLogged, err := loginChecker.Identify(context.Background(), "tkn")
	require.NoError(t, err)
	require.True(t, isLogged)

	// cached session outlives the ttl
	loginChecker.Now = func() time.Time { return now.Add(time.Hour) }
	_, isLogged, err = loginChecker.Identify(context.Background(), "tkn")
	require.NoError(t, err)
	assert.False(t, isLogged)

	mock.ExpectGet(testSessionKeyPrefix + "old").SetVal(fmt.Sprintf("%d|1|ana", now.Add(-3*time.Hour).Unix()))
	_, isLogged, err = loginChecker.Identify(context.Background(), "old")
	require.NoError(t, err)
	assert.False(t, isLogged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginChecker_Identify_Errors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := auth.NewLoginChecker(time.Hour, db)

	mock.ExpectGet(testSessionKeyPrefix + "tkn").SetErr(errors.New("redis gone"))
	_, isLogged, err := loginChecker.Identify(context.Background(), "tkn")
	require.Error(t, err)
	assert.False(t, isLogged)

	mock.ExpectGet(testSessionKeyPrefix + "tkn").SetVal("garbage")
	_, isLogged, err = loginChecker.Identify(context.Background(), "tkn")
	require.Error(t, err)
	assert.False(t, isLogged)
}

func TestIdentityFromContext(t *testing.T) {
	_, ok := auth.IdentityFromContext(context.Background())
	assert.False(t, ok)

	_, ok = auth.IdentityFromContext(auth.WithIdentity(context.Background(), auth.Identity{}))
	assert.False(t, ok)

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: 3, Username: "ana"})
	identity, ok := auth.IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(3), identity.UserID)
}
