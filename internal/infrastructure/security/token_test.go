package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodrankr/backend/internal/core/domain"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "foodrankr"})
	require.NoError(t, err)
	return svc.WithClock(fixedClock(epoch))
}

func TestTokenService_IssueValidate(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user-1", time.Hour)
	require.NoError(t, err)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	svc := newTestTokenService(t)
	ttl := 10 * time.Minute

	token, err := svc.Issue("user-1", ttl)
	require.NoError(t, err)

	_, err = svc.WithClock(fixedClock(epoch.Add(ttl - time.Second))).Validate(token)
	assert.NoError(t, err, "token must be valid just before expiry")

	_, err = svc.WithClock(fixedClock(epoch.Add(ttl))).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "expiry instant is exclusive")

	_, err = svc.WithClock(fixedClock(epoch.Add(ttl + time.Second))).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_ExpiryBoundary_SubSecond(t *testing.T) {
	issuedAt := epoch.Add(900 * time.Millisecond)
	svc := newTestTokenService(t).WithClock(fixedClock(issuedAt))
	ttl := 10 * time.Minute
	token, err := svc.Issue("user-1", ttl)
	require.NoError(t, err)

	expiry := issuedAt.Add(ttl)
	_, err = svc.WithClock(fixedClock(expiry.Add(-500 * time.Millisecond))).Validate(token)
	assert.NoError(t, err)
	_, err = svc.WithClock(fixedClock(expiry.Add(-time.Millisecond))).Validate(token)
	assert.NoError(t, err)
	_, err = svc.WithClock(fixedClock(expiry)).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = svc.WithClock(fixedClock(expiry.Add(time.Millisecond))).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user-1", 0)
	require.NoError(t, err)

	_, err = svc.WithClock(fixedClock(epoch.Add(DefaultTokenTTL - time.Second))).Validate(token)
	assert.NoError(t, err)
	_, err = svc.WithClock(fixedClock(epoch.Add(DefaultTokenTTL))).Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService(TokenConfig{Secret: "other-secret", Issuer: "foodrankr"})
	require.NoError(t, err)

	token, err := other.WithClock(fixedClock(epoch)).Issue("user-1", time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_RejectsWrongIssuer(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService(TokenConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)

	token, err := other.WithClock(fixedClock(epoch)).Issue("user-1", time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_RequiresClaims(t *testing.T) {
	svc := newTestTokenService(t)

	cases := map[string]jwt.RegisteredClaims{
		"missing exp": {Subject: "user-1", Issuer: "foodrankr"},
		"missing sub": {Issuer: "foodrankr", ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour))},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)

			_, err = svc.Validate(signed)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestTokenService(t)
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "foodrankr",
		ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService(TokenConfig{})
	assert.Error(t, err)
}
