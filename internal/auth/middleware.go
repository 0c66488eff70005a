package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fintrackapp/fintrack/internal/user"
)

const sessionCookieName = "session_token"

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SessionMiddleware authenticates a request by its session token, carried in
// either the Authorization header or the session cookie, and stores the
// user ID in the request context.
func (s *service) SessionMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := extractToken(r)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			userID, sessionID, err := s.jwtManager.ValidateSessionJWT(tokenString)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// A valid signature is not enough: logout kills the session.
			if _, err := s.sessionManager.VerifySession(sessionID); err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Session is no longer active")
				return
			}

			if _, err := s.userService.GetUserByID(userID); err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "User not found")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			ctx := context.WithValue(r.Context(), "userID", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return "", ErrInvalidToken
		}
		return tokenString, nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", ErrInvalidToken
	}
	return cookie.Value, nil
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
