package models

type Product struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Category    string   `json:"category" yaml:"category" validate:"required,category"`
	Price       float64  `json:"price" yaml:"price" validate:"gt=0"`
	OldPrice    *float64 `json:"oldPrice,omitempty" yaml:"oldPrice,omitempty" validate:"omitempty,gt=0"`
	Images      []string `json:"images" yaml:"images" validate:"dive,required"`
	Stock       int      `json:"stock" yaml:"stock" validate:"gte=0"`
	Tags        []string `json:"tags" yaml:"tags" validate:"dive,required"`
	Description string   `json:"description" yaml:"description" validate:"required"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// HasTag is an exact, case-sensitive match on the product's tag set.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
