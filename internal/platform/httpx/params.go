package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, ValidationError{Location: "path", Field: name, Message: "field " + name + " must be a positive integer"}
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter. Missing values yield def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Location: "query", Field: name, Message: "field " + name + " must be an integer"}
	}
	return v, nil
}

// SearchQuery reads termo, pagina, tamanho_pagina and ordem from the query
// string and bounds them with limits.
func SearchQuery(r *http.Request, limits shared.SearchLimits) (shared.SearchParams, error) {
	page, err := QueryInt(r, "pagina", 1)
	if err != nil {
		return shared.SearchParams{}, err
	}
	size, err := QueryInt(r, "tamanho_pagina", shared.DefaultPageSize)
	if err != nil {
		return shared.SearchParams{}, err
	}
	order, err := QueryInt(r, "ordem", int(shared.SortByName))
	if err != nil {
		return shared.SearchParams{}, err
	}
	return shared.NewSearchParams(r.URL.Query().Get("termo"), page, size, shared.SortKey(order), limits)
}
