package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/smartstock-io/smartstock-backend/api/middleware"
	"github.com/smartstock-io/smartstock-backend/api/responses"
	"github.com/smartstock-io/smartstock-backend/api/validators"
	sessionstore "github.com/smartstock-io/smartstock-backend/internal/session"
	pkgAuth "github.com/smartstock-io/smartstock-backend/pkg/auth"
	"github.com/smartstock-io/smartstock-backend/pkg/auth/session"
	"github.com/smartstock-io/smartstock-backend/pkg/config"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
	pkgerrors "github.com/smartstock-io/smartstock-backend/pkg/errors"
	"github.com/smartstock-io/smartstock-backend/pkg/logger"
)

type sessionIssuer interface {
	Generate(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=admin customer"`
}

type authResponse struct {
	Token string                 `json:"token"`
	User  *sessionstore.Identity `json:"user"`
}

// AuthLogin accepts any well-formed credentials and derives the identity from
// the email alone. The response carries a signed access token whose jti maps
// to a server-side session.
func AuthLogin(identities sessionstore.Store, sessions sessionIssuer, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity, err := identities.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := issueToken(r.Context(), sessions, cfg, identity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, authResponse{Token: token, User: identity})
	}
}

// AuthRegister creates a fresh identity; admins receive a new store id.
func AuthRegister(identities sessionstore.Store, sessions sessionIssuer, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseRole(payload.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		identity, err := identities.Register(r.Context(), sessionstore.RegisterInput{
			Name:  payload.Name,
			Email: payload.Email,
			Role:  role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := issueToken(r.Context(), sessions, cfg, identity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, authResponse{Token: token, User: identity})
	}
}

// AuthLogout revokes the server-side session and clears the persisted
// identity. The locale preference survives a logout.
func AuthLogout(identities sessionstore.Store, sessions sessionIssuer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
			return
		}

		if err := sessions.Revoke(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if err := identities.Logout(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"loggedOut": true})
	}
}

// AuthMe returns the identity rehydrated by the auth middleware.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		responses.WriteSuccess(w, identity)
	}
}

func issueToken(ctx context.Context, sessions sessionIssuer, cfg config.JWTConfig, identity *sessionstore.Identity) (string, error) {
	jti := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		JTI:    jti,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	if err := sessions.Generate(ctx, jti); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "registering session")
	}
	return token, nil
}
