package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"padelmania/internal/chatbot"
	"padelmania/internal/middleware"
	"padelmania/internal/models"
)

type chatState struct {
	Messages     []models.ChatMessage `json:"messages"`
	QuickReplies []models.QuickReply  `json:"quick_replies"`
}

// snapshot copies the conversation out so it can be rendered after the
// session lock is released.
func snapshot(bot *chatbot.Bot, conv *chatbot.Conversation) chatState {
	return chatState{
		Messages:     append([]models.ChatMessage(nil), conv.Messages...),
		QuickReplies: bot.QuickReplies(conv),
	}
}

func (h *Handler) chatSession(c *gin.Context) (string, bool) {
	id := middleware.SessionID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión no iniciada"})
		return "", false
	}
	return id, true
}

// GET /api/chat
func (h *Handler) GetChat(c *gin.Context) {
	id, ok := h.chatSession(c)
	if !ok {
		return
	}

	var state chatState
	_ = h.Chats.Do(id, func(bot *chatbot.Bot, conv *chatbot.Conversation) error {
		state = snapshot(bot, conv)
		return nil
	})
	c.JSON(http.StatusOK, state)
}

// POST /api/chat/messages
func (h *Handler) PostMessage(c *gin.Context) {
	id, ok := h.chatSession(c)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	var (
		reply models.ChatMessage
		state chatState
	)
	err := h.Chats.Do(id, func(bot *chatbot.Bot, conv *chatbot.Conversation) error {
		var err error
		if reply, err = bot.Reply(conv, input.Text); err != nil {
			return err
		}
		state = snapshot(bot, conv)
		return nil
	})
	if errors.Is(err, chatbot.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El mensaje está vacío"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":         reply,
		"messages":      state.Messages,
		"quick_replies": state.QuickReplies,
	})
}

// POST /api/chat/quick-replies/:action
func (h *Handler) QuickReply(c *gin.Context) {
	id, ok := h.chatSession(c)
	if !ok {
		return
	}

	var (
		reply models.ChatMessage
		state chatState
	)
	err := h.Chats.Do(id, func(bot *chatbot.Bot, conv *chatbot.Conversation) error {
		var err error
		if reply, err = bot.QuickReply(conv, c.Param("action")); err != nil {
			return err
		}
		state = snapshot(bot, conv)
		return nil
	})
	if errors.Is(err, chatbot.ErrUnknownAction) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Acción desconocida"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":         reply,
		"messages":      state.Messages,
		"quick_replies": state.QuickReplies,
	})
}

// DELETE /api/chat
func (h *Handler) ResetChat(c *gin.Context) {
	id, ok := h.chatSession(c)
	if !ok {
		return
	}
	h.Chats.Reset(id)
	c.JSON(http.StatusOK, gin.H{"message": "Conversación reiniciada"})
}
