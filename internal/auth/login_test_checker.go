package auth

import (
	"context"
	"sync"
)

type LoginTestChecker struct {
	mutex          sync.Mutex
	LoggedSessions map[string]Identity
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]Identity{},
	}
}

func (c *LoginTestChecker) Login(token string, identity Identity) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.LoggedSessions[token] = identity
}

func (c *LoginTestChecker) Identify(_ context.Context, token string) (Identity, bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	identity, ok := c.LoggedSessions[token]
	return identity, ok, nil
}

func (c *LoginTestChecker) Forget(token string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.LoggedSessions, token)
}
