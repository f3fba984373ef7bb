// Package requestmeta carries per-request caller metadata through contexts:
// the identity asserted by the auth gateway and the bearer token to forward
// to the order service.
package requestmeta

import "context"

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	HeaderXUserID         = "x-user-id"
	HeaderXSuperUser      = "x-super-user"
	HeaderXIdempotencyKey = "x-idempotency-key"

	identityKey contextKey = "identity"
	tokenKey    contextKey = "token"
)

// Identity is the caller as asserted by the gateway. A zero Identity means
// the request carried no identity headers.
type Identity struct {
	UserID    string
	SuperUser bool
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
