package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"padelmania/internal/models"
)

// SendContact handles POST /api/contact.
func (h *Handler) SendContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completá todos los campos con un email válido"})
		return
	}

	if err := h.Mailer.SendContact(c.Request.Context(), req); err != nil {
		h.Log.Error("contact message not sent", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "No pudimos enviar tu mensaje, intentá más tarde"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "¡Gracias! Te responderemos a la brevedad"})
}
