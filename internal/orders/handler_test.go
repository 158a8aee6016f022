package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-admin/storefront-admin/internal/platform/httpx"
	_ "github.com/storefront-admin/storefront-admin/testing"
)

func newTestRouter(repo *memoryRepository) http.Handler {
	h := NewHandler(nil, NewService(repo, nil), httpx.NewValidator())
	r := chi.NewRouter()
	r.Route("/admin", h.MountRoutes)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func problem(t *testing.T, rr *httptest.ResponseRecorder) httpx.ProblemDetail {
	t.Helper()
	var pd httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pd))
	return pd
}

func TestHandlerOrderLifecycle(t *testing.T) {
	router := newTestRouter(newMemoryRepository())

	rr := do(router, http.MethodPost, "/admin/inserir_pedido", `{"id_cliente":1,"itens":[{"id_produto":10,"quantidade":4}]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created Order
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, StateReceived, created.State)
	assert.Equal(t, "10", created.Total.String())

	for i := 0; i < 3; i++ {
		rr = do(router, http.MethodPost, "/admin/evoluir_pedido", `{"id_pedido":1}`)
		require.Equal(t, http.StatusNoContent, rr.Code)
	}

	rr = do(router, http.MethodPost, "/admin/evoluir_pedido", `{"id_pedido":1}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	pd := problem(t, rr)
	assert.Equal(t, httpx.CodeInvalidTransition, pd.Code)
	assert.Equal(t, []string{"body", "id_pedido"}, pd.ViolationsPath)

	rr = do(router, http.MethodPost, "/admin/cancelar_pedido", `{"id_pedido":1}`)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(router, http.MethodGet, "/admin/obter_pedido/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail Order
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, StateCancelled, detail.State)
	assert.Len(t, detail.Items, 1)
	require.NotNil(t, detail.Client)
	assert.Equal(t, "ana@example.com", detail.Client.Email)
}

func TestHandlerMissingOrder(t *testing.T) {
	router := newTestRouter(newMemoryRepository())

	for _, path := range []string{"/admin/evoluir_pedido", "/admin/cancelar_pedido"} {
		rr := do(router, http.MethodPost, path, `{"id_pedido":9}`)
		require.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Equal(t, httpx.CodeNotFound, problem(t, rr).Code)
	}

	rr := do(router, http.MethodPost, "/admin/alterar_pedido", `{"id":9,"estado":"paid"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(router, http.MethodGet, "/admin/obter_pedido/9", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlerAlterAndListByState(t *testing.T) {
	router := newTestRouter(newMemoryRepository())
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/admin/inserir_pedido", `{"id_cliente":1,"itens":[{"id_produto":11,"quantidade":1}]}`).Code)

	rr := do(router, http.MethodPost, "/admin/alterar_pedido", `{"id":1,"estado":"shipped"}`)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(router, http.MethodPost, "/admin/alterar_pedido", `{"id":1,"estado":"lost"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, []string{"body", "estado"}, problem(t, rr).ViolationsPath)

	rr = do(router, http.MethodGet, "/admin/obter_pedidos_por_estado/shipped", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var orders []Order
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	rr = do(router, http.MethodGet, "/admin/obter_pedidos_por_estado/paid", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(router, http.MethodGet, "/admin/obter_pedidos_por_estado/lost", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHandlerCreateRejectsUnknownProduct(t *testing.T) {
	router := newTestRouter(newMemoryRepository())

	rr := do(router, http.MethodPost, "/admin/inserir_pedido", `{"id_cliente":1,"itens":[{"id_produto":77,"quantidade":1}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, httpx.CodeConstraint, problem(t, rr).Code)

	rr = do(router, http.MethodPost, "/admin/inserir_pedido", `{"id_cliente":1,"itens":[]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, httpx.CodeValidation, problem(t, rr).Code)
}

func TestHandlerDetailAlwaysListsItems(t *testing.T) {
	repo := newMemoryRepository()
	order, err := repo.Create(context.Background(), 1, nil)
	require.NoError(t, err)
	router := newTestRouter(repo)

	rr := do(router, http.MethodGet, fmt.Sprintf("/admin/obter_pedido/%d", order.ID), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"itens":[]`)
}
