package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"padelmania/internal/models"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type document struct {
	Products []models.Product `json:"products" yaml:"products"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsKnownCategory(fl.Field().String())
	})
	return v
}

// Load reads the catalog file once. On failure it returns an empty catalog
// together with the error so callers can keep serving and show the problem.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("read catalog %s: %w", path, err)
		return Empty(err), err
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	c, err := Parse(data, format)
	if err != nil {
		err = fmt.Errorf("catalog %s: %w", path, err)
		return Empty(err), err
	}
	return c, nil
}

// Parse decodes and validates a catalog document. Accepted shapes are
// {"products": [...]} or a bare array of products.
func Parse(data []byte, format string) (*Catalog, error) {
	products, err := decode(data, format)
	if err != nil {
		return Empty(err), err
	}
	if err := Validate(products); err != nil {
		return Empty(err), err
	}
	return New(products), nil
}

func decode(data []byte, format string) ([]models.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	switch format {
	case "yaml":
		var doc document
		if err := yaml.Unmarshal(trimmed, &doc); err == nil && doc.Products != nil {
			return doc.Products, nil
		}
		var list []models.Product
		if err := yaml.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		return list, nil
	default:
		if trimmed[0] == '[' {
			var list []models.Product
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
			}
			return list, nil
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if doc.Products == nil {
			return nil, fmt.Errorf("%w: missing products list", ErrInvalidCatalog)
		}
		return doc.Products, nil
	}
}

// Validate checks every entry and the uniqueness of ids.
func Validate(products []models.Product) error {
	seen := make(map[string]int, len(products))
	for i, p := range products {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("%w: product #%d (%q): %v", ErrInvalidCatalog, i, p.ID, err)
		}
		if prev, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q at #%d and #%d", ErrInvalidCatalog, p.ID, prev, i)
		}
		seen[p.ID] = i
	}
	return nil
}
