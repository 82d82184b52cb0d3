package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/errors"
)

// userContextKey is the context key holding the authenticated db.User.
type userContextKey struct{}

// authenticator validates the JWT issued by the bot's session layer and
// loads the matching user document into the request context. A user that
// never touched the store yet has no document; the handlers then see a
// zero-valued user with just the Discord identifier set.
func (a *API) authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			errors.ErrUnauthorized.Write(w)
			return
		}
		if token == nil || jwt.Validate(token, jwt.WithRequiredClaim("userId")) != nil {
			errors.ErrUnauthorized.Withf("userId claim not found in JWT token").Write(w)
			return
		}
		userID, ok := claims["userId"].(string)
		if !ok || userID == "" {
			errors.ErrUnauthorized.Withf("malformed userId claim").Write(w)
			return
		}
		user, err := a.db.User(userID)
		if err != nil {
			if err != db.ErrNotFound {
				errors.ErrGenericInternalServerError.WithErr(err).Write(w)
				return
			}
			user = &db.User{ID: userID}
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFromContext returns the authenticated user stored by the
// authenticator middleware.
func userFromContext(ctx context.Context) (*db.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*db.User)
	return user, ok
}

// makeToken creates a JWT token for the given user identifier. The token is
// signed with the API secret. The bot issues the production tokens; this is
// kept for the API tests.
func (a *API) makeToken(id string) (string, error) {
	j := jwt.New()
	if err := j.Set("userId", id); err != nil {
		return "", err
	}
	if err := j.Set(jwt.ExpirationKey, time.Now().Add(jwtExpiration).UnixNano()); err != nil {
		return "", err
	}
	jmap, err := j.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	_, token, err := a.auth.Encode(jmap)
	return token, err
}
