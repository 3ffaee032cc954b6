package models

// FilterCriteria is derived view state for the shop grid. Zero values mean
// "not set".
type FilterCriteria struct {
	Category string   `form:"category" json:"category,omitempty"`
	MinPrice *float64 `form:"min_price" json:"min_price,omitempty"`
	MaxPrice *float64 `form:"max_price" json:"max_price,omitempty"`
	Tags     []string `form:"tags" json:"tags,omitempty"`
	InStock  bool     `form:"in_stock" json:"in_stock,omitempty"`
	Sort     string   `form:"sort" json:"sort,omitempty"`
}

// HasCategory treats "" and "all" as no category filter.
func (f FilterCriteria) HasCategory() bool {
	return f.Category != "" && f.Category != "all"
}

// Active reports whether any criterion narrows the result set.
func (f FilterCriteria) Active() bool {
	return f.HasCategory() || f.MinPrice != nil || f.MaxPrice != nil || len(f.Tags) > 0 || f.InStock
}
