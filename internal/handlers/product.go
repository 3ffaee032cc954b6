package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"padelmania/internal/middleware"
	"padelmania/internal/models"
	"padelmania/internal/pricing"
	"padelmania/internal/recommend"
	"padelmania/internal/search"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type productView struct {
	models.Product
	ImageURLs    []string             `json:"image_urls"`
	Discount     pricing.Discount     `json:"discount"`
	StockStatus  pricing.Stock        `json:"stock_status"`
	Installments pricing.Installments `json:"installments"`
}

func (h *Handler) view(ctx context.Context, p models.Product) productView {
	return productView{
		Product:      p,
		ImageURLs:    h.Images.ResolveAll(ctx, p.Images),
		Discount:     pricing.CalculateDiscount(p.Price, p.OldPrice),
		StockStatus:  pricing.StockStatus(p.Stock),
		Installments: pricing.CalculateInstallments(p.Price, h.Pricing.Installments),
	}
}

func (h *Handler) views(ctx context.Context, products []models.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, h.view(ctx, p))
	}
	return out
}

// ListProducts handles GET /api/products: filter, free-text search, sort
// and pagination over the catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filtros inválidos"})
		return
	}
	criteria.Tags = splitTags(criteria.Tags)

	if err := search.ValidateCriteria(criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rango de precios inválido"})
		return
	}
	if !search.IsSortKey(criteria.Sort) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Orden inválido"})
		return
	}

	limit, offset := pagination(c)
	query := strings.TrimSpace(c.Query("q"))
	products, engine := h.searchProducts(c.Request.Context(), criteria, query)
	search.Sort(products, criteria.Sort)

	total := len(products)
	start := min(offset, total)
	page := products[start : start+min(limit, total-start)]

	resp := gin.H{
		"products":   h.views(c.Request.Context(), page),
		"total":      total,
		"limit":      limit,
		"offset":     offset,
		"no_results": total == 0,
		"filters":    criteria,
		"query":      query,
		"engine":     engine,
		"facets":     h.facets(),
	}
	if err := h.Catalog.Err(); err != nil {
		resp["catalog_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// searchProducts matches the free-text part as a case-insensitive substring
// of title or description. Elasticsearch, when available, only ranks: its
// hits that really contain the query come first, in relevance order, then
// the remaining substring matches in catalog order. Any index error falls
// back to the in-memory match.
func (h *Handler) searchProducts(ctx context.Context, criteria models.FilterCriteria, query string) ([]models.Product, string) {
	all := h.Catalog.Products()
	matches := search.Filter(all, criteria, query)
	if query == "" || h.Index == nil {
		return matches, "memory"
	}

	ids, err := h.Index.SearchIDs(ctx, query, len(all))
	if err != nil {
		h.Log.Warn("search index unavailable, using in-memory match", zap.String("query", query), zap.Error(err))
		return matches, "memory"
	}

	ranked := search.Filter(search.ByIDs(all, ids), criteria, query)
	seen := make(map[string]bool, len(ranked))
	for _, p := range ranked {
		seen[p.ID] = true
	}
	for _, p := range matches {
		if !seen[p.ID] {
			ranked = append(ranked, p)
		}
	}
	return ranked, "elasticsearch"
}

func (h *Handler) facets() gin.H {
	var minPrice, maxPrice float64
	for i, p := range h.Catalog.Products() {
		if i == 0 || p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}
	categories := h.Catalog.Categories()
	if categories == nil {
		categories = []models.Category{}
	}
	tags := h.Catalog.Tags()
	if tags == nil {
		tags = []string{}
	}
	return gin.H{
		"categories": categories,
		"tags":       tags,
		"price":      gin.H{"min": minPrice, "max": maxPrice},
		"sort":       []string{search.SortPriceAsc, search.SortPriceDesc, search.SortNameAsc, search.SortNameDesc},
	}
}

// GetProduct handles GET /api/products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	p, ok := h.Catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	related := h.Sampler.Recommend(h.Catalog, p, recommend.DefaultLimit)

	inCart := 0
	if middleware.SessionID(c) != "" {
		if store, ok := h.sessionCart(c); ok {
			inCart = store.Quantity(p.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"product":         h.view(c.Request.Context(), p),
		"recommendations": h.views(c.Request.Context(), related),
		"in_cart":         inCart,
	})
}

// GenerateDescription handles POST /api/products/:id/description. The copy
// is canned; nothing is generated remotely.
func (h *Handler) GenerateDescription(c *gin.Context) {
	p, ok := h.Catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product_id":  p.ID,
		"description": h.Describer.Describe(p),
	})
}

// CatalogStatus handles GET /api/catalog/status.
func (h *Handler) CatalogStatus(c *gin.Context) {
	resp := gin.H{
		"products": h.Catalog.Len(),
		"ok":       h.Catalog.Err() == nil,
	}
	if err := h.Catalog.Err(); err != nil {
		resp["catalog_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// pagination clamps limit to 1..100 (default 20) and offset to >= 0.
func pagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// splitTags accepts both ?tags=a&tags=b and ?tags=a,b.
func splitTags(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, t := range strings.Split(r, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}
