package orders

import (
	"errors"
	"fmt"
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
}

func NewHandler(logger *slog.Logger, service *Service, validator *httpx.Validator) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator}
}

// MountRoutes registers order routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/inserir_pedido", h.Create)
	r.Post("/alterar_pedido", h.Alter)
	r.Post("/cancelar_pedido", h.Cancel)
	r.Post("/evoluir_pedido", h.Evolve)
	r.Get("/obter_pedido/{id}", h.Show)
	r.Get("/obter_pedidos_por_estado/{estado}", h.ListByState)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	items := make([]NewItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, NewItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	order, err := h.service.Create(r.Context(), req.ClientID, items)
	if err != nil {
		h.fail(w, "create order failed", err, "body")
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Alter(w http.ResponseWriter, r *http.Request) {
	var req AlterOrderRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	state, err := ParseState(req.State)
	if err != nil {
		httpx.RespondError(w, httpx.ValidationError{Location: "body", Field: "estado", Message: err.Error()})
		return
	}
	err = h.service.Alter(r.Context(), req.ID, state)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("order", req.ID, "body", "id"))
		return
	}
	if err != nil {
		h.fail(w, "alter order failed", err, "body")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req OrderIDRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Cancel(r.Context(), req.ID)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("order", req.ID, "body", "id_pedido"))
		return
	}
	if err != nil {
		h.fail(w, "cancel order failed", err, "body", "id_pedido")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Evolve(w http.ResponseWriter, r *http.Request) {
	var req OrderIDRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	_, err := h.service.Evolve(r.Context(), req.ID)
	switch {
	case err == nil:
		httpx.NoContent(w)
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("order", req.ID, "body", "id_pedido"))
	case errors.Is(err, ErrInvalidTransition):
		httpx.Problem(w, http.StatusNotFound, httpx.NewProblem("int",
			fmt.Sprintf("order with id %d cannot evolve past its current state", req.ID),
			httpx.CodeInvalidTransition, "body", "id_pedido"))
	case errors.Is(err, ErrStateConflict):
		httpx.Problem(w, http.StatusConflict, httpx.NewProblem("int",
			fmt.Sprintf("order with id %d changed state concurrently, retry", req.ID),
			httpx.CodeStateConflict, "body", "id_pedido"))
	default:
		h.fail(w, "evolve order failed", err, "body", "id_pedido")
	}
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	order, err := h.service.Detail(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("order", id, "path", "id"))
		return
	}
	if err != nil {
		h.fail(w, "get order failed", err, "path", "id")
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) ListByState(w http.ResponseWriter, r *http.Request) {
	state, err := ParseState(chi.URLParam(r, "estado"))
	if err != nil {
		httpx.RespondError(w, httpx.ValidationError{Location: "path", Field: "estado", Message: err.Error()})
		return
	}
	orders, err := h.service.ListByState(r.Context(), state)
	if err != nil {
		h.fail(w, "list orders by state failed", err, "path", "estado")
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, path ...string) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, slog.Any("error", err))
	}
	httpx.RespondError(w, err, path...)
}
