package chatbot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"padelmania/internal/models"
	"padelmania/internal/pricing"
	"padelmania/internal/recommend"
)

var (
	ErrEmptyMessage  = errors.New("empty message")
	ErrUnknownAction = errors.New("unknown quick reply action")
)

// RecommendCount is how many products a recommendation reply lists.
const RecommendCount = 3

// Conversation is the ordered message log of one chat. It is not safe for
// concurrent use; Sessions serializes access per session.
type Conversation struct {
	Messages []models.ChatMessage `json:"messages"`
}

// Bot answers with scripted replies. It never calls out of the process.
type Bot struct {
	catalog recommend.Source
	sampler *recommend.Sampler
	now     func() time.Time
	newID   func() string
}

type Option func(*Bot)

func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

func WithIDs(newID func() string) Option {
	return func(b *Bot) { b.newID = newID }
}

func New(catalog recommend.Source, sampler *recommend.Sampler, opts ...Option) *Bot {
	b := &Bot{
		catalog: catalog,
		sampler: sampler,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// NewConversation starts a chat with the greeting message.
func (b *Bot) NewConversation() *Conversation {
	return &Conversation{Messages: []models.ChatMessage{b.message(models.RoleAssistant, greetingText, nil)}}
}

// QuickReplies lists the shortcut buttons. They are offered only while the
// conversation holds nothing but the greeting.
func (b *Bot) QuickReplies(conv *Conversation) []models.QuickReply {
	if len(conv.Messages) > 1 {
		return []models.QuickReply{}
	}
	out := make([]models.QuickReply, 0, len(quickReplyOrder))
	for _, action := range quickReplyOrder {
		out = append(out, models.QuickReply{Text: quickReplies[action].label, Action: action})
	}
	return out
}

// Reply appends the user's input and exactly one assistant reply, and
// returns the reply.
func (b *Bot) Reply(conv *Conversation, input string) (models.ChatMessage, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	conv.Messages = append(conv.Messages, b.message(models.RoleUser, input, nil))
	reply := b.answer(cases.Fold().String(input))
	conv.Messages = append(conv.Messages, reply)
	return reply, nil
}

// QuickReply plays a shortcut: its canned user prompt, then the reply.
func (b *Bot) QuickReply(conv *Conversation, action string) (models.ChatMessage, error) {
	qr, ok := quickReplies[action]
	if !ok {
		return models.ChatMessage{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	conv.Messages = append(conv.Messages, b.message(models.RoleUser, qr.prompt, nil))
	var reply models.ChatMessage
	if qr.popular {
		reply = b.recommendation("🌟 Te recomiendo estos productos populares:", "¡Todos con excelentes reviews!")
	} else {
		reply = b.message(models.RoleAssistant, qr.fixed, nil)
	}
	conv.Messages = append(conv.Messages, reply)
	return reply, nil
}

func (b *Bot) answer(folded string) models.ChatMessage {
	if containsAny(folded, recommendKeywords) {
		return b.recommendation("🌟 Basándome en tu consulta, te recomiendo:", "¿Te interesa alguno de estos?")
	}
	for _, r := range fixedRules {
		if containsAny(folded, r.keywords) {
			return b.message(models.RoleAssistant, r.text, nil)
		}
	}
	return b.message(models.RoleAssistant, defaultText, nil)
}

func (b *Bot) recommendation(intro, outro string) models.ChatMessage {
	picks := b.sampler.Sample(b.catalog, RecommendCount)
	if len(picks) == 0 {
		return b.message(models.RoleAssistant, noProductsText, nil)
	}

	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	ids := make([]string, 0, len(picks))
	for _, p := range picks {
		fmt.Fprintf(&sb, "• %s - %s\n", p.Title, pricing.FormatCurrency(p.Price))
		ids = append(ids, p.ID)
	}
	sb.WriteString("\n")
	sb.WriteString(outro)
	return b.message(models.RoleAssistant, sb.String(), ids)
}

func (b *Bot) message(role, text string, productIDs []string) models.ChatMessage {
	return models.ChatMessage{
		ID:         b.newID(),
		Role:       role,
		Text:       text,
		ProductIDs: productIDs,
		CreatedAt:  b.now(),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
