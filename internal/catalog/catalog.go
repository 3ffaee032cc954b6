package catalog

import (
	"sort"

	"padelmania/internal/models"
)

// Catalog is the read-only product list for the lifetime of the process.
// A catalog that failed to load is empty and carries the load error.
type Catalog struct {
	products []models.Product
	byID     map[string]int
	loadErr  error
}

// New builds a catalog from already validated products, keeping their order.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = cloneProduct(p)
		c.byID[p.ID] = i
	}
	return c
}

// Empty returns a catalog with no products that reports err as its load error.
func Empty(err error) *Catalog {
	return &Catalog{byID: map[string]int{}, loadErr: err}
}

// Products returns a copy of the ordered product list.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	for i, p := range c.products {
		out[i] = cloneProduct(p)
	}
	return out
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(c.products[i]), true
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Err is the error that left the catalog empty, if any.
func (c *Catalog) Err() error {
	return c.loadErr
}

// Categories lists the categories present in the catalog with product counts.
func (c *Catalog) Categories() []models.Category {
	counts := map[string]int{}
	for _, p := range c.products {
		counts[p.Category]++
	}
	var out []models.Category
	for _, id := range models.CategoryOrder {
		if n := counts[id]; n > 0 {
			out = append(out, models.Category{ID: id, Name: models.CategoryName(id), Count: n})
		}
	}
	return out
}

// Tags returns every tag used by the catalog, sorted.
func (c *Catalog) Tags() []string {
	seen := map[string]struct{}{}
	for _, p := range c.products {
		for _, t := range p.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func cloneProduct(p models.Product) models.Product {
	if p.OldPrice != nil {
		v := *p.OldPrice
		p.OldPrice = &v
	}
	p.Images = append([]string(nil), p.Images...)
	p.Tags = append([]string(nil), p.Tags...)
	return p
}
