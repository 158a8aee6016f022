package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Middleware resolves the bearer token into a shared.Principal. Requests
// without a valid, unrevoked token stop with 401.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		principal, err := s.Authenticate(r.Context(), raw)
		if err != nil {
			if !httpx.IsClientError(err) {
				s.logger.Error("authenticate token",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
