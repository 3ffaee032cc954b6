package search

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"padelmania/internal/models"
)

var ErrInvalidPriceRange = errors.New("invalid price range")

// ValidateCriteria rejects negative bounds and min > max.
func ValidateCriteria(c models.FilterCriteria) error {
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return ErrInvalidPriceRange
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return ErrInvalidPriceRange
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return ErrInvalidPriceRange
	}
	return nil
}

// Filter returns the products matching every set criterion, in input order.
// The query is a case-insensitive substring match on title or description.
func Filter(products []models.Product, c models.FilterCriteria, query string) []models.Product {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.HasCategory() && p.Category != c.Category {
			continue
		}
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if len(c.Tags) > 0 && !hasAnyTag(p, c.Tags) {
			continue
		}
		if c.InStock && !p.InStock() {
			continue
		}
		if q != "" &&
			!strings.Contains(fold.String(p.Title), q) &&
			!strings.Contains(fold.String(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByIDs picks the products whose id is in ids, in the order of ids.
// Unknown and repeated ids are skipped.
func ByIDs(products []models.Product, ids []string) []models.Product {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
		delete(byID, id)
	}
	return out
}

func hasAnyTag(p models.Product, tags []string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}
