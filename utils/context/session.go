package context

import (
	"context"

	"github.com/octabyte/saveat-admin/models"
)

type contextKey string

const requestSessionKey contextKey = "requestSession"

// WithSession stores the session the route guard admitted the request with.
func WithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, requestSessionKey, session)
}

func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(requestSessionKey).(models.Session)
	return session, ok
}
