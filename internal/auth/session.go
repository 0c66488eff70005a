package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidSession = errors.New("session is invalid")
	ErrExpiredSession = errors.New("session is expired")
	ErrInternalError  = errors.New("internal Server Error")
)

const defaultSessionDuration = 24 * time.Hour

type SessionManagerInterface interface {
	CreateSession(userID string, duration time.Duration) (string, error)
	VerifySession(sessionID string) (string, error)
	DeleteSession(sessionID string)
	CleanupExpired() int
}

type Session struct {
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewSessionManager() SessionManagerInterface {
	return &SessionManager{
		sessions: make(map[string]Session),
	}
}

func (sm *SessionManager) CreateSession(userID string, duration time.Duration) (string, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return "", ErrInternalError
	}

	sessionID := hex.EncodeToString(idBytes)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[sessionID] = Session{
		UserID:    userID,
		ExpiresAt: time.Now().Add(duration),
		CreatedAt: time.Now(),
	}
	return sessionID, nil
}

func (sm *SessionManager) VerifySession(sessionID string) (string, error) {
	sm.mu.RLock()
	session, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if !exists {
		return "", ErrInvalidSession
	}

	if time.Now().After(session.ExpiresAt) {
		return "", ErrExpiredSession
	}

	return session.UserID, nil
}

func (sm *SessionManager) DeleteSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, sessionID)
}

// CleanupExpired drops stale sessions and reports how many were removed.
// The server runs this on a schedule.
func (sm *SessionManager) CleanupExpired() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	now := time.Now()
	for sessionID, session := range sm.sessions {
		if now.After(session.ExpiresAt) {
			delete(sm.sessions, sessionID)
			removed++
		}
	}
	return removed
}
