package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"padelmania/internal/cart"
	"padelmania/internal/pricing"
)

func (h *Handler) cartSummary(ctx context.Context, store *cart.Store) gin.H {
	items := store.Items()
	for i := range items {
		items[i].ImageURL = h.Images.Resolve(ctx, items[i].ImageURL)
	}
	subtotal := store.Subtotal()

	return gin.H{
		"items":                items,
		"count":                store.ItemCount(),
		"lines":                store.Len(),
		"subtotal":             subtotal,
		"subtotal_formatted":   pricing.FormatCurrency(subtotal),
		"installment_estimate": store.InstallmentEstimate(h.Pricing.Installments),
		"installments":         pricing.CalculateInstallments(subtotal, h.Pricing.Installments),
		"shipping":             pricing.ShippingQuote(subtotal, h.Pricing.FreeShippingThreshold),
	}
}

// cartError maps cart errors to a status and a message for the customer.
func (h *Handler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida"})
	case errors.Is(err, cart.ErrUnknownProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
	case errors.Is(err, cart.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Stock insuficiente"})
	default:
		h.Log.Error("cart storage error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el carrito"})
	}
}

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.cartSummary(c.Request.Context(), store))
}

// POST /api/cart/add
func (h *Handler) AddToCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}
	qty := 1
	if input.Quantity != nil {
		qty = *input.Quantity
	}

	if err := store.Add(c.Request.Context(), input.ProductID, qty); err != nil {
		h.cartError(c, err)
		return
	}

	resp := h.cartSummary(c.Request.Context(), store)
	resp["message"] = "Producto agregado al carrito"
	c.JSON(http.StatusOK, resp)
}

// PUT /api/cart/:productId
func (h *Handler) UpdateCartItem(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}

	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	if err := store.SetQuantity(c.Request.Context(), c.Param("productId"), *input.Quantity); err != nil {
		h.cartError(c, err)
		return
	}

	resp := h.cartSummary(c.Request.Context(), store)
	resp["message"] = "Carrito actualizado"
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/cart/:productId
func (h *Handler) RemoveFromCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}

	if err := store.Remove(c.Request.Context(), c.Param("productId")); err != nil {
		h.cartError(c, err)
		return
	}

	resp := h.cartSummary(c.Request.Context(), store)
	resp["message"] = "Producto eliminado del carrito"
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/cart/clear
func (h *Handler) ClearCart(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}

	if err := store.Clear(c.Request.Context()); err != nil {
		h.cartError(c, err)
		return
	}

	resp := h.cartSummary(c.Request.Context(), store)
	resp["message"] = "Carrito vaciado"
	c.JSON(http.StatusOK, resp)
}

// GET /api/cart/checkout
func (h *Handler) Checkout(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	checkout := h.WhatsApp.Checkout(store.Items(), store.Subtotal())
	c.JSON(http.StatusOK, gin.H{
		"message":  checkout.Message,
		"link":     checkout.Link,
		"is_empty": store.IsEmpty(),
	})
}

// GET /api/cart/checkout/qr
func (h *Handler) CheckoutQR(c *gin.Context) {
	store, ok := h.sessionCart(c)
	if !ok {
		return
	}
	png, err := h.WhatsApp.QRCode(h.WhatsApp.Checkout(store.Items(), store.Subtotal()))
	if err != nil {
		h.Log.Error("checkout qr", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el código QR"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}
