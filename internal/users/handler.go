package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// Handler manages user management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *httpx.Validator
	limits    shared.SearchLimits
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validator *httpx.Validator, limits shared.SearchLimits) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator, limits: limits}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/obter_usuarios", h.listUsers)
	r.Get("/buscar_usuarios", h.searchUsers)
	r.Get("/obter_usuario/{id}", h.showUser)
	r.Post("/inserir_usuario", h.createUser)
	r.Post("/alterar_usuario", h.updateUser)
	r.Post("/excluir_usuario", h.deleteUser)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list users failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, users)
}

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	params, err := httpx.SearchQuery(r, h.limits)
	if err != nil {
		h.fail(w, "search users failed", err, "query")
		return
	}
	users, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.fail(w, "search users failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(users, params, total))
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("user", id, "path", "id"))
		return
	}
	if err != nil {
		h.fail(w, "get user failed", err, "path", "id")
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.service.Create(r.Context(), NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		h.fail(w, "create user failed", err, "body")
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Update(r.Context(), UserUpdate{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("user", req.ID, "body", "id"))
		return
	}
	if err != nil {
		h.fail(w, "update user failed", err, "body")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	var req UserIDRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Delete(r.Context(), req.ID)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("user", req.ID, "body", "id_usuario"))
		return
	}
	if err != nil {
		h.fail(w, "delete user failed", err, "body", "id_usuario")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, path ...string) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, slog.Any("error", err))
	}
	httpx.RespondError(w, err, path...)
}
