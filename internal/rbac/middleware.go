// Package rbac gates route groups by the profile of the authenticated
// principal.
package rbac

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Middleware wires profile authorization helpers for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAny ensures the current principal has one of the given profiles.
// Requests without a principal get 401, other profiles 403.
func (m Middleware) RequireAny(profiles ...string) func(http.Handler) http.Handler {
	allowed := normalizeProfiles(profiles)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shared.PrincipalFromContext(r.Context())
			if principal == nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			if hasAnyProfile(principal.Profile, allowed) {
				next.ServeHTTP(w, r)
				return
			}
			if m.Logger != nil {
				m.Logger.Warn("rbac denied",
					slog.Int64("user_id", principal.UserID),
					slog.String("profile", principal.Profile),
					slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, shared.ErrForbidden)
		})
	}
}

func normalizeProfiles(profiles []string) map[string]struct{} {
	unique := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		unique[p] = struct{}{}
	}
	return unique
}

func hasAnyProfile(profile string, allowed map[string]struct{}) bool {
	_, ok := allowed[strings.ToLower(strings.TrimSpace(profile))]
	return ok
}
