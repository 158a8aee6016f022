package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *httpx.Validator
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validator *httpx.Validator) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator}
}

// MountRoutes registers auth routes on provided router. Login is public;
// logout needs the token it revokes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/entrar", h.handleLogin)
	r.With(h.service.Middleware).Post("/sair", h.handleLogout)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !httpx.IsClientError(err) {
			h.logger.Error("login failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	principal := shared.PrincipalFromContext(r.Context())
	if err := h.service.Logout(r.Context(), principal); err != nil {
		if !httpx.IsClientError(err) {
			h.logger.Warn("revoke token", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
