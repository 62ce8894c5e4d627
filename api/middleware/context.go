package middleware

import (
	"context"

	"github.com/smartstock-io/smartstock-backend/internal/session"
	"github.com/smartstock-io/smartstock-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxRole     contextKey = "actor_role"
	ctxStoreID  contextKey = "store_id"
	ctxIdentity contextKey = "identity"
	ctxLocale   contextKey = "locale"
	ctxSession  contextKey = "session_id"
)

// SessionIDFromContext returns the jti of the presented access token, or ""
// outside the auth middleware.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSession).(string); ok {
		return v
	}
	return ""
}

// WithSessionID injects the access token's jti into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sessionID)
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func StoreIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStoreID).(string); ok {
		return v
	}
	return ""
}

// IdentityFromContext returns the authenticated identity, or nil outside the
// auth middleware.
func IdentityFromContext(ctx context.Context) *session.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*session.Identity); ok {
		return v
	}
	return nil
}

// LocaleFromContext returns the active locale, defaulting to English outside
// the locale middleware.
func LocaleFromContext(ctx context.Context) enums.Locale {
	if ctx == nil {
		return enums.DefaultLocale
	}
	if v, ok := ctx.Value(ctxLocale).(enums.Locale); ok {
		return v
	}
	return enums.DefaultLocale
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, identity *session.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxIdentity, identity)
	if identity == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxUserID, identity.ID.String())
	ctx = context.WithValue(ctx, ctxRole, string(identity.Role))
	if identity.StoreID != nil {
		ctx = context.WithValue(ctx, ctxStoreID, identity.StoreID.String())
	}
	return ctx
}

// WithLocale injects the active locale into the context.
func WithLocale(ctx context.Context, locale enums.Locale) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxLocale, locale)
}
