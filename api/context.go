package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const sessionKey keyType = "session"

// User types carried in Supabase's user_metadata.
const (
	UserTypeClient   = "client"
	UserTypeBusiness = "business"
)

// Session is the authenticated caller, decoded once by the auth middleware.
type Session struct {
	UserID   uuid.UUID
	UserType string
}

// IsBusiness reports whether the caller signed up as a store owner.
func (s Session) IsBusiness() bool {
	return s.UserType == UserTypeBusiness
}

// ctxWithSession adds the decoded session to the context
func ctxWithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// sessionFromCtx retrieves the session placed by the auth middleware. The
// second return is false on routes that skipped authentication.
func sessionFromCtx(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	return session, ok
}
