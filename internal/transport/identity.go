package transport

import (
	"context"
	"net/http"
	"strings"
)

type userKey struct{}

// UserFromContext returns the caller identity from context, if present.
func UserFromContext(ctx context.Context) (string, bool) {
	user, ok := ctx.Value(userKey{}).(string)
	return user, ok && user != ""
}

// IdentityMiddleware copies the User header into the request context.
// Identity is a bare display name carried per request; nothing stops a
// caller from claiming any name. Handlers that need an identity reject
// requests where it is absent.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get("User"))
		if user != "" {
			ctx := context.WithValue(r.Context(), userKey{}, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
