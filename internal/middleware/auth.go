package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
)

type identityKey struct{}

// WithIdentity returns ctx carrying the caller identity.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity attached by Authenticate.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// GetAccountID returns the caller's account id, or "" for anonymous calls.
func GetAccountID(ctx context.Context) string {
	id, _ := IdentityFrom(ctx)
	return id.AccountID
}

// Authenticate verifies the Bearer token on each request and attaches the
// caller identity to the context. When required is false, requests with a
// missing or bad token go through anonymously.
func Authenticate(tokens *auth.TokenIssuer, required bool) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			id, err := identify(tokens, req.Header().Get("Authorization"))
			if err != nil {
				if required {
					return nil, connect.NewError(connect.CodeUnauthenticated, err)
				}
				return next(ctx, req)
			}
			return next(WithIdentity(ctx, id), req)
		}
	}
}

func identify(tokens *auth.TokenIssuer, header string) (auth.Identity, error) {
	token, err := bearerToken(header)
	if err != nil {
		return auth.Identity{}, err
	}
	return tokens.Verify(token)
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}
