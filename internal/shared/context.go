package shared

import "context"

type principalContextKey struct{}

// Principal describes the authenticated caller of a request.
type Principal struct {
	UserID  int64
	Name    string
	Email   string
	Profile string
	TokenID string
}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
