package auth

import "context"

var _ SessionChecker = (*LoginChecker)(nil)
var _ SessionChecker = (*LoginTestChecker)(nil)

type Checker interface {
	// Identify returns the identity of a logged-in session token.
	Identify(ctx context.Context, token string) (Identity, bool, error)
}

// SessionChecker is a Checker that can drop a token from its local cache
// once the session is closed.
type SessionChecker interface {
	Checker
	Forget(token string)
}
