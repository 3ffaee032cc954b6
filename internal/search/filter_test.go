package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"padelmania/internal/models"
)

func fixtures() []models.Product {
	return []models.Product{
		{ID: "1", Title: "PadelNature Pro", Category: "pelotas", Price: 15, Stock: 10, Tags: []string{"premium", "eco"}, Description: "Pelota premium para jugadores avanzados"},
		{ID: "2", Title: "EcoSpin Soft", Category: "pelotas", Price: 12, Stock: 0, Tags: []string{"eco"}, Description: "Pelota suave"},
		{ID: "3", Title: "Grip Wave Control", Category: "grips", Price: 10, Stock: 5, Tags: []string{"control"}, Description: "Máxima absorción"},
		{ID: "4", Title: "Muñequera SoftShield Azul", Category: "munequeras", Price: 14, Stock: 3, Tags: []string{"antibacterial"}, Description: "Algodón"},
	}
}

func ptr(f float64) *float64 { return &f }

func ids(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_NoCriteriaKeepsEverythingInOrder(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter(fixtures(), models.FilterCriteria{}, "")))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter(fixtures(), models.FilterCriteria{Category: "all"}, "  ")))
}

func TestFilter_CategoryMatchesOnly(t *testing.T) {
	got := Filter(fixtures(), models.FilterCriteria{Category: "pelotas"}, "")
	assert.Equal(t, []string{"1", "2"}, ids(got))
	for _, p := range got {
		assert.Equal(t, "pelotas", p.Category)
	}
}

func TestFilter_PriceRangeIsInclusive(t *testing.T) {
	got := Filter(fixtures(), models.FilterCriteria{MinPrice: ptr(12), MaxPrice: ptr(14)}, "")
	assert.Equal(t, []string{"2", "4"}, ids(got))
	for _, p := range got {
		assert.True(t, p.Price >= 12 && p.Price <= 14)
	}

	assert.Equal(t, []string{"1", "2", "4"}, ids(Filter(fixtures(), models.FilterCriteria{MinPrice: ptr(12)}, "")))
	assert.Equal(t, []string{"3"}, ids(Filter(fixtures(), models.FilterCriteria{MaxPrice: ptr(10)}, "")))
}

func TestFilter_TagIntersection(t *testing.T) {
	got := Filter(fixtures(), models.FilterCriteria{Tags: []string{"control", "antibacterial"}}, "")
	assert.Equal(t, []string{"3", "4"}, ids(got))
}

func TestFilter_InStock(t *testing.T) {
	got := Filter(fixtures(), models.FilterCriteria{Category: "pelotas", InStock: true}, "")
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_QueryIsCaseInsensitiveOnTitleAndDescription(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, ids(Filter(fixtures(), models.FilterCriteria{}, "PELOTA")))
	assert.Equal(t, []string{"3"}, ids(Filter(fixtures(), models.FilterCriteria{}, "ABSORCIÓN")))
	assert.Equal(t, []string{"4"}, ids(Filter(fixtures(), models.FilterCriteria{}, "muñequera")))
	assert.Empty(t, Filter(fixtures(), models.FilterCriteria{}, "antibacterial"), "tags are not searched as text")
}

func TestFilter_NoResultsIsEmptyNotNil(t *testing.T) {
	got := Filter(fixtures(), models.FilterCriteria{Category: "gorras"}, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValidateCriteria(t *testing.T) {
	assert.NoError(t, ValidateCriteria(models.FilterCriteria{}))
	assert.NoError(t, ValidateCriteria(models.FilterCriteria{MinPrice: ptr(5), MaxPrice: ptr(5)}))
	assert.ErrorIs(t, ValidateCriteria(models.FilterCriteria{MinPrice: ptr(10), MaxPrice: ptr(5)}), ErrInvalidPriceRange)
	assert.ErrorIs(t, ValidateCriteria(models.FilterCriteria{MinPrice: ptr(-1)}), ErrInvalidPriceRange)
}

func TestByIDs(t *testing.T) {
	got := ByIDs(fixtures(), []string{"3", "missing", "1", "3"})
	assert.Equal(t, []string{"3", "1"}, ids(got))
}

func TestSort(t *testing.T) {
	p := fixtures()
	Sort(p, SortPriceAsc)
	assert.Equal(t, []string{"3", "2", "4", "1"}, ids(p))

	Sort(p, SortPriceDesc)
	assert.Equal(t, []string{"1", "4", "2", "3"}, ids(p))

	Sort(p, SortNameAsc)
	assert.Equal(t, []string{"2", "3", "4", "1"}, ids(p))

	Sort(p, SortNameDesc)
	assert.Equal(t, []string{"1", "4", "3", "2"}, ids(p))

	before := ids(p)
	Sort(p, "whatever")
	assert.Equal(t, before, ids(p))

	assert.True(t, IsSortKey(""))
	assert.False(t, IsSortKey("newest"))
}
