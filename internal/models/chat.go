package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"` // "user" or "assistant"
	Text       string    `json:"text"`
	ProductIDs []string  `json:"product_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuickReply struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}
