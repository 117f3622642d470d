package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultIdentityCacheTTL = time.Minute
	identityCacheCleanup    = 5 * time.Minute
)

// LoginChecker resolves session tokens, keeping recently seen sessions in
// memory in front of redis.
type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	cache       *cache.Cache
	cacheTTL    time.Duration
	// ability to inject the clock (for unit testing)
	Now func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		cache:       cache.New(DefaultIdentityCacheTTL, identityCacheCleanup),
		cacheTTL:    DefaultIdentityCacheTTL,
		Now:         time.Now,
	}
}

func (c *LoginChecker) Identify(ctx context.Context, token string) (Identity, bool, error) {
	if cached, found := c.cache.Get(token); found {
		session := cached.(*LoginSession)
		if !session.expired(c.Now(), c.ttl) {
			return session.Identity, true, nil
		}
		c.cache.Delete(token)
		return Identity{}, false, nil
	}

	value, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, false, nil
		}
		return Identity{}, false, err
	}

	session, err := decodeSession(token, value)
	if err != nil {
		return Identity{}, false, err
	}
	if session.expired(c.Now(), c.ttl) {
		return Identity{}, false, nil
	}

	c.cache.Set(token, session, c.cacheTTL)
	return session.Identity, true, nil
}

// Forget drops the token from the in-memory cache, e.g. after a logout.
func (c *LoginChecker) Forget(token string) {
	c.cache.Delete(token)
}
