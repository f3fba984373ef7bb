package middlewares

import (
	"net/http"
	"strings"

	"github.com/jcmexdev/butcher-orders/internal/pkg/requestmeta"
)

// Identity lifts the caller metadata the auth gateway attaches to every
// request into the context: the asserted user, the super-user flag, and the
// bearer token to forward to the order service. Authentication itself
// happens upstream; an absent identity simply yields a non-privileged zero
// user.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestmeta.Identity{
			UserID:    r.Header.Get(requestmeta.HeaderXUserID),
			SuperUser: strings.EqualFold(r.Header.Get(requestmeta.HeaderXSuperUser), "true"),
		}

		ctx := requestmeta.WithIdentity(r.Context(), id)
		if token := bearerToken(r.Header.Get("Authorization")); token != "" {
			ctx = requestmeta.WithToken(ctx, token)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
