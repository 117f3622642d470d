package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errMalformedSession = errors.New("malformed session value")

type LoginSession struct {
	Token     string
	Identity  Identity
	CreatedAt time.Time
}

// encodeSession stores a session as "createdAtUnix|userID|username".
func encodeSession(identity Identity, createdAt time.Time) string {
	return fmt.Sprintf("%d|%d|%s", createdAt.Unix(), identity.UserID, identity.Username)
}

func decodeSession(token, value string) (*LoginSession, error) {
	parts := strings.SplitN(value, "|", 3)
	if len(parts) != 3 {
		return nil, errMalformedSession
	}

	createdAtUnix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: created at: %w", errMalformedSession, err)
	}
	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: user id: %w", errMalformedSession, err)
	}

	return &LoginSession{
		Token: token,
		Identity: Identity{
			UserID:   userID,
			Username: parts[2],
		},
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

func (s *LoginSession) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}
