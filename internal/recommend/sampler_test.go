package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padelmania/internal/catalog"
	"padelmania/internal/models"
)

func storeCatalog() *catalog.Catalog {
	return catalog.New([]models.Product{
		{ID: "1", Title: "PadelNature Pro", Category: "pelotas", Price: 15000, Stock: 25},
		{ID: "2", Title: "EcoSpin Soft", Category: "pelotas", Price: 12000, Stock: 40},
		{ID: "3", Title: "Grip Wave Control", Category: "grips", Price: 10000, Stock: 60},
		{ID: "4", Title: "Cubregrip EcoFeel", Category: "grips", Price: 8000, Stock: 4},
		{ID: "5", Title: "Gorra AirFlow Verde", Category: "gorras", Price: 20000, Stock: 15},
		{ID: "6", Title: "Gorra ArenaWave", Category: "gorras", Price: 22000, Stock: 0},
		{ID: "7", Title: "Gorra Sunset", Category: "gorras", Price: 21000, Stock: 2},
		{ID: "8", Title: "Gorra Night", Category: "gorras", Price: 19000, Stock: 9},
		{ID: "9", Title: "Gorra Breeze", Category: "gorras", Price: 18000, Stock: 1},
	})
}

func titles(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestRecommend_SingleCategoryMate(t *testing.T) {
	c := storeCatalog()
	src, ok := c.Get("1")
	require.True(t, ok)

	got := New().Recommend(c, src, 3)
	assert.Equal(t, []string{"EcoSpin Soft"}, titles(got))
}

func TestRecommend_InStockFirstThenCatalogOrder(t *testing.T) {
	c := storeCatalog()
	src, _ := c.Get("5")

	got := New().Recommend(c, src, 3)
	assert.Equal(t, []string{"Gorra Sunset", "Gorra Night", "Gorra Breeze"}, titles(got))

	got = New().Recommend(c, src, 10)
	assert.Equal(t, []string{"Gorra Sunset", "Gorra Night", "Gorra Breeze", "Gorra ArenaWave"}, titles(got))
}

func TestRecommend_DefaultLimit(t *testing.T) {
	c := storeCatalog()
	src, _ := c.Get("5")
	assert.Len(t, New().Recommend(c, src, 0), DefaultLimit)
}

func TestRecommend_UnknownCategoryIsEmpty(t *testing.T) {
	got := New().Recommend(storeCatalog(), models.Product{ID: "x", Category: "accesorios"}, 3)
	assert.Empty(t, got)
}

func TestRecommend_RandomPolicyProperties(t *testing.T) {
	c := storeCatalog()
	s := New(WithPolicy(PolicyRandom), WithRand(rand.New(rand.NewSource(7))))

	for _, src := range c.Products() {
		sameCategory := 0
		for _, p := range c.Products() {
			if p.Category == src.Category && p.ID != src.ID {
				sameCategory++
			}
		}

		for i := 0; i < 20; i++ {
			got := s.Recommend(c, src, 3)
			assert.Len(t, got, min(3, sameCategory))

			seen := map[string]bool{}
			for _, p := range got {
				assert.NotEqual(t, src.ID, p.ID, "never recommends the product itself")
				assert.Equal(t, src.Category, p.Category)
				assert.False(t, seen[p.ID], "duplicate %s", p.ID)
				seen[p.ID] = true
			}
			assert.False(t, seen["6"], "in-stock products fill every slot first")
		}
	}
}

func TestSample(t *testing.T) {
	c := storeCatalog()
	s := New(WithRand(rand.New(rand.NewSource(1))))

	got := s.Sample(c, 3)
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for _, p := range got {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}

	assert.Len(t, s.Sample(c, 50), c.Len())
	assert.Empty(t, s.Sample(c, 0))
	assert.Empty(t, s.Sample(catalog.New(nil), 3))
}

func TestSample_SeededIsReproducible(t *testing.T) {
	c := storeCatalog()
	a := New(WithRand(rand.New(rand.NewSource(99)))).Sample(c, 3)
	b := New(WithRand(rand.New(rand.NewSource(99)))).Sample(c, 3)
	assert.Equal(t, titles(a), titles(b))
}

func TestParsePolicy(t *testing.T) {
	p, ok := ParsePolicy("")
	assert.True(t, ok)
	assert.Equal(t, PolicyFirst, p)

	p, ok = ParsePolicy("random")
	assert.True(t, ok)
	assert.Equal(t, PolicyRandom, p)

	_, ok = ParsePolicy("best")
	assert.False(t, ok)
}
