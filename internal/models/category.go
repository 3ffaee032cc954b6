package models

// Category identifiers used by the catalog. Display names are in Spanish,
// like the rest of the storefront.
const (
	CategoryPelotas    = "pelotas"
	CategoryGrips      = "grips"
	CategoryGorras     = "gorras"
	CategoryMunequeras = "munequeras"
	CategoryAccesorios = "accesorios"
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

var categoryNames = map[string]string{
	CategoryPelotas:    "Pelotas",
	CategoryGrips:      "Grips",
	CategoryGorras:     "Gorras",
	CategoryMunequeras: "Muñequeras",
	CategoryAccesorios: "Accesorios",
}

// CategoryOrder is the order categories are listed in facets.
var CategoryOrder = []string{
	CategoryPelotas,
	CategoryGrips,
	CategoryGorras,
	CategoryMunequeras,
	CategoryAccesorios,
}

func IsKnownCategory(id string) bool {
	_, ok := categoryNames[id]
	return ok
}

func CategoryName(id string) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return id
}
