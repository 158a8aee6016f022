package products

import (
	"errors"
	"image"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// multipart bodies may carry the image plus a handful of text fields
const maxFormBytes = MaxImageBytes + 1<<20

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

// MountRoutes registers product routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/obter_produtos", h.List)
	r.Get("/buscar_produtos", h.Search)
	r.Get("/obter_produto/{id}", h.Show)
	r.Get("/obter_produtos_por_categoria/{id}", h.ListByCategory)
	r.Post("/inserir_produto", h.Create)
	r.Post("/alterar_produto", h.Update)
	r.Post("/alterar_imagem_produto", h.ReplaceImage)
	r.Post("/excluir_produto", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "list products failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := httpx.SearchQuery(r, h.limits)
	if err != nil {
		h.fail(w, "search products failed", err, "query")
		return
	}
	products, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.fail(w, "search products failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(products, params, total))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("product", id, "path", "id"))
		return
	}
	if err != nil {
		h.fail(w, "get product failed", err, "path", "id")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	products, err := h.service.ListByCategory(r.Context(), id)
	if err != nil {
		h.fail(w, "list products by category failed", err, "path", "id")
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		httpx.RespondError(w, err)
		return
	}
	form, err := readProductForm(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct("body", form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil || price.IsNegative() {
		httpx.RespondError(w, httpx.ValidationError{Location: "body", Field: "preco", Message: "field preco must be a non-negative decimal"})
		return
	}

	img, err := formImage(r, false)
	if err != nil {
		h.imageFailure(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), Product{
		CategoryID:  form.CategoryID,
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
		Stock:       form.Stock,
	}, img)
	if err != nil {
		h.fail(w, "create product failed", err, "body")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Update(r.Context(), Product{
		ID:          req.ID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	})
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("product", req.ID, "body", "id"))
		return
	}
	if err != nil {
		h.fail(w, "update product failed", err, "body")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	if err := h.parseMultipart(w, r); err != nil {
		httpx.RespondError(w, err)
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("id_produto")), 10, 64)
	if err != nil || id < 1 {
		httpx.RespondError(w, httpx.ValidationError{Location: "body", Field: "id_produto", Message: "field id_produto must be a positive integer"})
		return
	}
	img, err := formImage(r, true)
	if err != nil {
		h.imageFailure(w, err)
		return
	}
	err = h.service.ReplaceImage(r.Context(), id, img)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("product", id, "body", "id_produto"))
		return
	}
	if err != nil {
		h.fail(w, "replace product image failed", err, "body", "imagem")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req ProductIDRequest
	if err := h.validator.DecodeAndValidate(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	err := h.service.Delete(r.Context(), req.ID)
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, httpx.NotFound("product", req.ID, "body", "id_produto"))
		return
	}
	if err != nil {
		h.fail(w, "delete product failed", err, "body", "id_produto")
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil {
		return httpx.ValidationError{Location: "body", Message: "malformed multipart body: " + err.Error()}
	}
	return nil
}

func readProductForm(r *http.Request) (ProductForm, error) {
	form := ProductForm{
		Name:        r.FormValue("nome"),
		Price:       r.FormValue("preco"),
		Description: r.FormValue("descricao"),
	}
	if raw := strings.TrimSpace(r.FormValue("id_categoria")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ProductForm{}, httpx.ValidationError{Location: "body", Field: "id_categoria", Message: "field id_categoria must be an integer"}
		}
		form.CategoryID = &id
	}
	if raw := strings.TrimSpace(r.FormValue("estoque")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return ProductForm{}, httpx.ValidationError{Location: "body", Field: "estoque", Message: "field estoque must be an integer"}
		}
		form.Stock = stock
	}
	return form, nil
}

// formImage decodes the "imagem" part. A missing part yields a nil image
// unless required is set.
func formImage(r *http.Request, required bool) (image.Image, error) {
	file, _, err := r.FormFile("imagem")
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			return nil, httpx.ValidationError{Location: "body", Field: "imagem", Message: "field imagem is required"}
		}
		return nil, nil
	}
	if err != nil {
		return nil, ErrInvalidImage
	}
	defer file.Close()
	return DecodeImage(file)
}

func (h *Handler) imageFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidImage) {
		httpx.Problem(w, http.StatusUnprocessableEntity,
			httpx.NewProblem("file", "imagem is not a supported image (jpeg, png, gif, webp)", httpx.CodeInvalidImage, "body", "imagem"))
		return
	}
	h.fail(w, "read product image failed", err, "body", "imagem")
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, path ...string) {
	if !httpx.IsClientError(err) {
		h.logger.Error(msg, slog.Any("error", err))
	}
	httpx.RespondError(w, err, path...)
}
