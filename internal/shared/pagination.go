package shared

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Page is a search result page returned by the search endpoints.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage wraps items with pagination metadata derived from params.
func NewPage[T any](items []T, params SearchParams, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: NewPagination(params.Page, params.PageSize, total)}
}

const (
	DefaultPageSize      = 10
	DefaultMaxPageSize   = 100
	DefaultMaxTermLength = 100
)

// SortKey selects one of the fixed ORDER BY clauses a search may use.
type SortKey int

// SortByName orders by the entity name. It is the only sort the catalog
// supports; the numeric value matches the "ordem" query parameter.
const SortByName SortKey = 1

// SortClause maps every allowed sort key to its ORDER BY expression for a
// given name column. Keys outside this map are rejected.
func SortClause(key SortKey, nameColumn string) (string, error) {
	switch key {
	case SortByName:
		return nameColumn + " ASC, id ASC", nil
	default:
		return "", fmt.Errorf("%w: unsupported sort key %d", ErrValidation, key)
	}
}

// SearchLimits bounds caller-supplied search parameters.
type SearchLimits struct {
	MaxPageSize   int
	MaxTermLength int
}

// DefaultSearchLimits returns the limits used when none are configured.
func DefaultSearchLimits() SearchLimits {
	return SearchLimits{MaxPageSize: DefaultMaxPageSize, MaxTermLength: DefaultMaxTermLength}
}

// SearchParams describes a LIKE search with 1-indexed pagination.
type SearchParams struct {
	Term     string
	Page     int
	PageSize int
	Sort     SortKey
}

// NewSearchParams normalizes and bounds caller input.
func NewSearchParams(term string, page, pageSize int, sort SortKey, limits SearchLimits) (SearchParams, error) {
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = DefaultMaxPageSize
	}
	if limits.MaxTermLength <= 0 {
		limits.MaxTermLength = DefaultMaxTermLength
	}
	term = strings.TrimSpace(norm.NFC.String(term))
	if utf8.RuneCountInString(term) > limits.MaxTermLength {
		return SearchParams{}, fmt.Errorf("%w: term longer than %d characters", ErrValidation, limits.MaxTermLength)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > limits.MaxPageSize {
		return SearchParams{}, fmt.Errorf("%w: page size above %d", ErrValidation, limits.MaxPageSize)
	}
	// the row offset must fit in an int
	if page-1 > math.MaxInt/pageSize {
		return SearchParams{}, fmt.Errorf("%w: page %d out of range", ErrValidation, page)
	}
	if sort == 0 {
		sort = SortByName
	}
	if _, err := SortClause(sort, "nome"); err != nil {
		return SearchParams{}, err
	}
	return SearchParams{Term: term, Page: page, PageSize: pageSize, Sort: sort}, nil
}

// Offset returns the row offset of the first row of the page.
func (p SearchParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Pattern returns the term wrapped in LIKE wildcards. Wildcards typed by
// the caller are escaped so they match literally.
func (p SearchParams) Pattern() string {
	return LikePattern(p.Term)
}

// LikePattern escapes LIKE metacharacters in term and wraps it in %.
func LikePattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
