package ports

import "time"

// PasswordHasher is the credential store: a salted, slow, one-way hash.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// TokenService mints and validates signed, time-bound bearer tokens.
type TokenService interface {
	// Issue returns a token for subject that expires after ttl. A non-positive
	// ttl falls back to the configured default.
	Issue(subject string, ttl time.Duration) (string, error)
	// Validate returns the token's subject or domain.ErrUnauthenticated.
	Validate(token string) (string, error)
}
