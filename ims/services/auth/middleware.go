package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"ims/ims/api"
)

type contextKey string

const userContextKey contextKey = "user"

// User identifies the authenticated account for the current request. The
// username doubles as the faculty id for accounts in the faculty table.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	RoleFaculty = "faculty"
	RoleHOD     = "hod"
	RoleAdmin   = "admin"
)

// SessionVerifier resolves the session cookie carried by a request into
// the authenticated user.
type SessionVerifier interface {
	VerifySession(r *http.Request) (User, error)
}

func Middleware(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		handler := func(w http.ResponseWriter, r *http.Request) {
			user, err := verifier.VerifySession(r)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}

			reqCtx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(reqCtx))
		}

		return http.HandlerFunc(handler)
	}
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if encErr := json.NewEncoder(w).Encode(api.Envelope{Success: false, Message: err.Error()}); encErr != nil {
		slog.Error("error serializing error response", "error", encErr)
	}
}

func GetUser(r *http.Request) (User, error) {
	userUntyped := r.Context().Value(userContextKey)
	if userUntyped == nil {
		return User{}, fmt.Errorf("user field not found in request context")
	}
	user, ok := userUntyped.(User)
	if !ok {
		return User{}, fmt.Errorf("invalid value for user field")
	}
	return user, nil
}

// HasRole reports whether the user's role is one of the allowed roles.
func (u User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}
