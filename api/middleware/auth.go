package middleware

import (
	"net/http"
	"strings"

	"github.com/smartstock-io/smartstock-backend/api/responses"
	sessionstore "github.com/smartstock-io/smartstock-backend/internal/session"
	pkgAuth "github.com/smartstock-io/smartstock-backend/pkg/auth"
	"github.com/smartstock-io/smartstock-backend/pkg/auth/session"
	"github.com/smartstock-io/smartstock-backend/pkg/config"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

// Auth validates a bearer token, checks the server-side session and seeds the
// request context with the rehydrated identity.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, identities sessionstore.Store, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			identity, err := identities.Current(r.Context(), claims.UserID.String())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = WithSessionID(ctx, claims.ID)

			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.ID.String())
				if identity.StoreID != nil {
					ctx = logg.WithStoreID(ctx, identity.StoreID.String())
				}
				ctx = logg.WithField(ctx, "actor_role", string(identity.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
