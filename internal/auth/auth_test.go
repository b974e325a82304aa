package auth

import (
	"testing"
	"time"

	"videotube/internal/config"
	"videotube/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	issuer, err := NewTokenIssuer(config.JWTConfig{
		AccessSecret:  "access_secret_for_testing",
		AccessExpiry:  15 * time.Minute,
		RefreshSecret: "refresh_secret_for_testing",
		RefreshExpiry: 240 * time.Hour,
	})
	require.NoError(t, err)
	return issuer
}

func newTestUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "testuser",
		Email:    "test@example.com",
		FullName: "Test User",
	}
}

func TestHashPassword(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "mySecretPassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	require.True(t, CheckPasswordHash(password, hash), "Password should match the hash")
	require.False(t, CheckPasswordHash("wrongPassword", hash), "Wrong password should not match the hash")
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	issuer := newTestIssuer(t)
	user := newTestUser()

	tokenString, err := issuer.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := issuer.VerifyAccessToken(tokenString)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims.UserID)
	require.Equal(t, user.Username, claims.Username)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.FullName, claims.FullName)
	require.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	issuer := newTestIssuer(t)
	user := newTestUser()

	first, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)
	second, err := issuer.IssueRefreshToken(user)
	require.NoError(t, err)
	require.NotEqual(t, first, second, "refresh tokens minted back to back must differ")

	claims, err := issuer.VerifyRefreshToken(first)
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims.UserID)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, time.Now().Add(240*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	issuer := newTestIssuer(t)
	pair, err := issuer.IssuePair(newTestUser())
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = issuer.VerifyAccessToken(pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecretAndExpired(t *testing.T) {
	issuer := newTestIssuer(t)
	user := newTestUser()

	other, err := NewTokenIssuer(config.JWTConfig{
		AccessSecret:  "another_access_secret",
		AccessExpiry:  time.Minute,
		RefreshSecret: "another_refresh_secret",
		RefreshExpiry: time.Hour,
	})
	require.NoError(t, err)

	foreign, err := other.IssueAccessToken(user)
	require.NoError(t, err)
	_, err = issuer.VerifyAccessToken(foreign)
	require.ErrorIs(t, err, ErrTokenInvalid)
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)

	claimsExpired := &RefreshClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
			Issuer:    "videotube",
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsExpired).SignedString([]byte("refresh_secret_for_testing"))
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	_, err = issuer.VerifyRefreshToken("not-a-jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
