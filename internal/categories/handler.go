package categories

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *httpx.Validator
	limits    shared.SearchLimits
}

func NewHandler(logger *slog.Logger, service *Service, validator *httpx.Validator, limits shared.SearchLimits) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator, limits: limits}
}

// MountRoutes registers category routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/obter_categorias", h.List)
	r.Get("/buscar_categorias", h.Search)
	r.Get("/obter_categoria/{id}", h.Show)
	r.Post("/inserir_categoria", h.Create)
	r.Post("/alterar_categoria", h.Update)
	r.Post("/excluir_categoria", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list categories failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := httpx.SearchQuery(r, h.limits)
	if err != nil {
		h.fail(w, "search categories failed", err, "query")
		return
	}
	categories, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.fail(w, "search categories failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(categories, params, total))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("category", id, "path", "id"))
		return
	}
	if err != nil {
		h.fail(w, "get category failed", err, "path", "id")
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), Category{Name: req.Name, Description: req.Description})
	if err != nil {
		h.fail(w, "create category failed", err, "body")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Update(r.Context(), Category{ID: req.ID, Name: req.Name, Description: req.Description})
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("category", req.ID, "body", "id"))
		return
	}
	if err != nil {
		h.fail(w, "update category failed", err, "body")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req CategoryIDRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Delete(r.Context(), req.ID)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("category", req.ID, "body", "id_categoria"))
		return
	}
	if err != nil {
		h.fail(w, "delete category failed", err, "body", "id_categoria")
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
