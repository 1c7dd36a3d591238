package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/apperrors"
	"github.com/shulebase/shulebase/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireSession resolves the bearer token into an Identity and rejects the
// request otherwise. The three failure states map to distinct responses so a
// missing profile or unknown role is never mistaken for a login problem,
// and is never silently granted a view.
func RequireSession(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractBearer(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			identity, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrUnauthenticated):
					writeAuthError(w, http.StatusUnauthorized, "authentication required")
				case errors.Is(err, apperrors.ErrProfileNotFound):
					writeAuthError(w, http.StatusForbidden, "profile not found")
				case errors.Is(err, apperrors.ErrUnknownRole):
					log.Warn().Str("path", r.URL.Path).Msg("Session resolved to unknown role")
					writeAuthError(w, http.StatusForbidden, "access denied")
				default:
					log.Error().Err(err).Msg("Session resolution failed")
					writeAuthError(w, http.StatusInternalServerError, "session resolution failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the resolved identity from context
func GetIdentity(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the identity. Used by tests and by
// the seed tooling, which has no HTTP request to resolve from.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
