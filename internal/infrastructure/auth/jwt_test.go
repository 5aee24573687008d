package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobelhaus/storefront/internal/infrastructure/config"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-that-is-long-enough-0001",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "storefront-test",
	})
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	service := testService()
	userID := uuid.New()

	access, refresh, expiresIn, err := service.IssuePair(userID, "greta@example.com", "customer")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := service.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_RefreshFlow(t *testing.T) {
	service := testService()
	userID := uuid.New()

	_, refresh, _, err := service.IssuePair(userID, "greta@example.com", "customer")
	require.NoError(t, err)

	access, newRefresh, _, err := service.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newRefresh)

	claims, err := service.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	service := testService()

	access, refresh, _, err := service.IssuePair(uuid.New(), "greta@example.com", "customer")
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(refresh)
	assert.Error(t, err)

	_, _, _, err = service.Refresh(access)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	service := testService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-that-is-long-enough-02",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
	})

	access, _, _, err := other.IssuePair(uuid.New(), "greta@example.com", "customer")
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service := testService()

	_, err := service.VerifyAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, hasher.Verify("hunter2hunter2", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}
