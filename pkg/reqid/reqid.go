// Package reqid tags each HTTP request with a correlation id. The id rides
// in the request context and the X-Request-ID header, and the request logger
// adds it to every log line.
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the id between services.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh random id.
func New() string { return uuid.NewString() }

// WithValue stores the id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the id stored in ctx, or "".
func FromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns every request an id, keeping one supplied by an
// upstream proxy so traces correlate across hops, and echoes it in the
// response header.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
