package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/fintrackapp/fintrack/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service interface {
	Login(email, password string) (*user.User, string, error)
	Logout(tokenString string) error
	SessionMiddleware() func(http.Handler) http.Handler
	CleanupSessions()
}

type service struct {
	userService    user.Service
	sessionManager SessionManagerInterface
	jwtManager     JWTManagerInterface
}

func NewAuthService(userService user.Service, sessionManager SessionManagerInterface, jwtManager JWTManagerInterface) Service {
	return &service{
		userService:    userService,
		sessionManager: sessionManager,
		jwtManager:     jwtManager,
	}
}

// Login authenticates the user and opens a server-side session wrapped in a
// signed token.
func (s *service) Login(email, password string) (*user.User, string, error) {
	existingUser, err := s.userService.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return nil, "", ErrInvalidCredentials
		}
		log.Printf("could not authenticate user: %v", err)
		return nil, "", ErrInternalError
	}

	sessionID, err := s.sessionManager.CreateSession(existingUser.ID, defaultSessionDuration)
	if err != nil {
		return nil, "", ErrInternalError
	}

	tokenString, err := s.jwtManager.GenerateSessionJWT(existingUser.ID, sessionID, defaultSessionDuration)
	if err != nil {
		s.sessionManager.DeleteSession(sessionID)
		log.Printf("could not sign session token: %v", err)
		return nil, "", ErrInternalError
	}

	return existingUser, tokenString, nil
}

// Logout destroys the session behind the token. The token itself becomes
// useless even though its signature stays valid until expiry.
func (s *service) Logout(tokenString string) error {
	_, sessionID, err := s.jwtManager.ValidateSessionJWT(tokenString)
	if err != nil {
		return err
	}
	s.sessionManager.DeleteSession(sessionID)
	return nil
}

func (s *service) CleanupSessions() {
	if removed := s.sessionManager.CleanupExpired(); removed > 0 {
		log.Printf("removed %d expired sessions", removed)
	}
}
