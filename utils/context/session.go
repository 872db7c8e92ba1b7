package context

import (
	"context"

	"github.com/redpulse/client-go/models"
)

type contextKey string

const sessionContextKey contextKey = "requestSession"

// WithSession returns a context carrying an explicit session context. Calls
// that find one attached skip the store lookup and use it as-is.
func WithSession(ctx context.Context, sc models.SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey, sc)
}

// SessionFromContext extracts the session context attached by WithSession.
func SessionFromContext(ctx context.Context) (models.SessionContext, bool) {
	sc, ok := ctx.Value(sessionContextKey).(models.SessionContext)
	return sc, ok
}
