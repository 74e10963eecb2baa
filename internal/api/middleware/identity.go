package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/fatetable/internal/api/apierr"
	"github.com/mcoot/fatetable/internal/dependencies/random"
	"github.com/mcoot/fatetable/internal/model"
)

type contextKey string

const userContextKey contextKey = "user"

// UserQueryParam lets a reconnecting client resume its previous identity
const UserQueryParam = "user"

// maxUserIDLength bounds client-supplied user ids
const maxUserIDLength = 128

// Identity assigns a user id to the request. A client may present the id it
// was given on an earlier connection; otherwise a fresh one is generated.
// There is no authentication: the id is a bearer of identity only.
func Identity(random random.Random) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.URL.Query().Get(UserQueryParam))
			if len(user) > maxUserIDLength {
				apierr.WriteError(w, apierr.NewInvalidRequestError("user id is too long"))
				return
			}
			if user == "" {
				user = random.UUID()
			}

			ctx := context.WithValue(r.Context(), userContextKey, model.UserID(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the user id from the request context
func GetUser(ctx context.Context) (model.UserID, bool) {
	user, ok := ctx.Value(userContextKey).(model.UserID)
	return user, ok
}

// MustGetUser returns the user id or panics
func MustGetUser(ctx context.Context) model.UserID {
	user, ok := GetUser(ctx)
	if !ok {
		panic("no user in context - identity middleware not applied?")
	}
	return user
}
