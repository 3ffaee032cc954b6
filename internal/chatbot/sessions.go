package chatbot

import (
	"sync"
	"time"

	"padelmania/internal/models"
)

const (
	// DefaultMaxMessages caps a conversation so an idle tab cannot grow it forever.
	DefaultMaxMessages = 100
	// DefaultIdleTTL is how long an untouched conversation is kept.
	DefaultIdleTTL = 24 * time.Hour
	// DefaultMaxSessions caps the number of live conversations.
	DefaultMaxSessions = 10000
)

// Sessions keeps one conversation per session id in memory. Chats are
// transient: they vanish on restart, after DefaultIdleTTL without use, or
// when the least recently used one makes room for a new session.
type Sessions struct {
	bot         *Bot
	maxMessages int
	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time

	mu    sync.Mutex
	convs map[string]*session
}

type session struct {
	conv     *Conversation
	lastUsed time.Time
}

type SessionsOption func(*Sessions)

func WithIdleTTL(d time.Duration) SessionsOption {
	return func(s *Sessions) { s.idleTTL = d }
}

func WithMaxSessions(n int) SessionsOption {
	return func(s *Sessions) { s.maxSessions = n }
}

func WithSessionClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) { s.now = now }
}

func NewSessions(bot *Bot, maxMessages int, opts ...SessionsOption) *Sessions {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	s := &Sessions{
		bot:         bot,
		maxMessages: maxMessages,
		maxSessions: DefaultMaxSessions,
		idleTTL:     DefaultIdleTTL,
		now:         time.Now,
		convs:       map[string]*session{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Do runs fn on the session's conversation under the lock, creating the
// conversation with its greeting first if needed. The log is trimmed to the
// newest messages afterwards.
func (s *Sessions) Do(sessionID string, fn func(*Bot, *Conversation) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.convs[sessionID]
	if ok && now.Sub(sess.lastUsed) >= s.idleTTL {
		ok = false
	}
	if !ok {
		s.sweep(now)
		sess = &session{conv: s.bot.NewConversation()}
		s.convs[sessionID] = sess
	}
	sess.lastUsed = now

	conv := sess.conv
	err := fn(s.bot, conv)
	if n := len(conv.Messages); n > s.maxMessages {
		conv.Messages = append([]models.ChatMessage(nil), conv.Messages[n-s.maxMessages:]...)
	}
	return err
}

// sweep drops idle conversations, then the least recently used ones until a
// new session fits. Runs only when a conversation is created.
func (s *Sessions) sweep(now time.Time) {
	for id, sess := range s.convs {
		if now.Sub(sess.lastUsed) >= s.idleTTL {
			delete(s.convs, id)
		}
	}
	for s.maxSessions > 0 && len(s.convs) >= s.maxSessions {
		var oldest string
		var oldestAt time.Time
		for id, sess := range s.convs {
			if oldest == "" || sess.lastUsed.Before(oldestAt) {
				oldest, oldestAt = id, sess.lastUsed
			}
		}
		delete(s.convs, oldest)
	}
}

// Reset drops the session's conversation.
func (s *Sessions) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, sessionID)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.convs)
}
