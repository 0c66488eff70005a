package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	manager := NewSessionManager()

	sessionID, err := manager.CreateSession("user-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	userID, err := manager.VerifySession(sessionID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	manager.DeleteSession(sessionID)
	_, err = manager.VerifySession(sessionID)
	assert.Equal(t, ErrInvalidSession, err)
}

func TestVerifySession_Expired(t *testing.T) {
	manager := NewSessionManager()

	sessionID, err := manager.CreateSession("user-1", -time.Minute)
	require.NoError(t, err)

	_, err = manager.VerifySession(sessionID)
	assert.Equal(t, ErrExpiredSession, err)
}

func TestCleanupExpired(t *testing.T) {
	manager := NewSessionManager()

	expired, err := manager.CreateSession("user-1", -time.Minute)
	require.NoError(t, err)
	alive, err := manager.CreateSession("user-2", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, manager.CleanupExpired())

	_, err = manager.VerifySession(expired)
	assert.Equal(t, ErrInvalidSession, err)
	_, err = manager.VerifySession(alive)
	assert.NoError(t, err)
}

func TestJWTSessionRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	manager := NewJWTManager()

	tokenString, err := manager.GenerateSessionJWT("user-1", "session-1", time.Hour)
	require.NoError(t, err)

	userID, sessionID, err := manager.ValidateSessionJWT(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "session-1", sessionID)
}

func TestValidateSessionJWT_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	manager := NewJWTManager()

	tokenString, err := manager.GenerateSessionJWT("user-1", "session-1", -time.Minute)
	require.NoError(t, err)

	_, _, err = manager.ValidateSessionJWT(tokenString)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestValidateSessionJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	signer := NewJWTManager()
	tokenString, err := signer.GenerateSessionJWT("user-1", "session-1", time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	verifier := NewJWTManager()
	_, _, err = verifier.ValidateSessionJWT(tokenString)
	assert.Equal(t, ErrInvalidToken, err)
}
