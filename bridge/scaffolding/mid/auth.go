package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/luminahq/lumina/bridge/scaffolding/errs"
	"github.com/luminahq/lumina/infrastructure/web"
)

// SessionAuthenticator validates a bearer token and returns the owning user id.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Bearer validates the Authorization header against the session store and
// stores the authenticated user id in the context.
func Bearer(auth SessionAuthenticator) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token, err := bearerToken(r)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "Unauthorized")
			}

			userID, err := auth.Authenticate(ctx, token)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "Unauthorized")
			}

			ctx = setUserID(ctx, userID)
			ctx = setSessionID(ctx, token)

			return next(ctx, r)
		}
	}
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errs.Newf(errs.Unauthenticated, "expected authorization header format: Bearer <token>")
	}

	return parts[1], nil
}
