package shared

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchParamsDefaults(t *testing.T) {
	params, err := NewSearchParams("  col ", 0, 0, 0, DefaultSearchLimits())
	require.NoError(t, err)
	assert.Equal(t, "col", params.Term)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, SortByName, params.Sort)
	assert.Equal(t, 0, params.Offset())
}

func TestSearchParamsOffset(t *testing.T) {
	params, err := NewSearchParams("", 3, 20, SortByName, DefaultSearchLimits())
	require.NoError(t, err)
	assert.Equal(t, 40, params.Offset())
}

func TestNewSearchParamsRejectsOversizedInput(t *testing.T) {
	limits := SearchLimits{MaxPageSize: 50, MaxTermLength: 5}

	_, err := NewSearchParams("", 1, 51, SortByName, limits)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewSearchParams("abcdef", 1, 10, SortByName, limits)
	assert.True(t, errors.Is(err, ErrValidation))

	// five runes, more than five bytes
	_, err = NewSearchParams("ação!", 1, 10, SortByName, limits)
	assert.NoError(t, err)
}

func TestNewSearchParamsRejectsOverflowingPage(t *testing.T) {
	_, err := NewSearchParams("", math.MaxInt/50, 100, SortByName, DefaultSearchLimits())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewSearchParams("", math.MaxInt, 2, SortByName, DefaultSearchLimits())
	assert.True(t, errors.Is(err, ErrValidation))

	params, err := NewSearchParams("", math.MaxInt/100+1, 100, SortByName, DefaultSearchLimits())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, params.Offset(), 0)
}

func TestNewSearchParamsRejectsUnknownSort(t *testing.T) {
	_, err := NewSearchParams("x", 1, 10, SortKey(2), DefaultSearchLimits())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestSortClause(t *testing.T) {
	clause, err := SortClause(SortByName, "p.nome")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(clause, "p.nome ASC"))

	_, err = SortClause(SortKey(99), "nome")
	assert.Error(t, err)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%col%", LikePattern("col"))
	assert.Equal(t, `%50\%\_off%`, LikePattern("50%_off"))
	assert.Equal(t, "%%", LikePattern(""))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.Page)

	p = NewPagination(0, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PerPage)
	assert.Equal(t, 0, p.TotalPages)
}

func TestNewPageNeverNilItems(t *testing.T) {
	params, err := NewSearchParams("", 1, 10, SortByName, DefaultSearchLimits())
	require.NoError(t, err)
	page := NewPage[int](nil, params, 0)
	assert.NotNil(t, page.Items)
}
