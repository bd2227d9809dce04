package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestHMACService_AccessToken(t *testing.T) {
	s := newTestService()
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "a@example.com")
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, "a@example.com", c.Email)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
	assert.NotEmpty(t, c.ID)
	assert.False(t, s.IsRefreshToken(c))
}

func TestHMACService_TokensHaveDistinctIDs(t *testing.T) {
	s := newTestService()
	id := uuid.New()

	a, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)
	b, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)

	ca, err := s.ValidateToken(a)
	require.NoError(t, err)
	cb, err := s.ValidateToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
	assert.True(t, s.IsRefreshToken(ca))
}

func TestHMACService_Expired(t *testing.T) {
	s := newTestService()
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := s.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_RejectsForeignSecret(t *testing.T) {
	other := NewHMACService("x", "y", time.Minute, time.Minute)
	tok, err := other.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_TokenKindIsBoundToSecret(t *testing.T) {
	// Signs refresh tokens with the access secret of the validating service.
	forger := NewHMACService("other", "access-secret", time.Minute, time.Hour)
	tok, err := forger.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Issuer(t *testing.T) {
	a := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour, WithIssuer("dhruvtara"))
	b := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour, WithIssuer("someone-else"))

	tok, err := a.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	c, err := a.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "dhruvtara", c.Issuer)

	_, err = b.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_Garbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestClaims_TTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := Claims{RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Minute))}}
	assert.Equal(t, time.Minute, c.TTL(now))
	assert.Zero(t, c.TTL(now.Add(2*time.Minute)))
	assert.Zero(t, Claims{}.TTL(now))
}
