package model

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	titleLimit = 50
)

// ChatMessage - одна реплика в переписке
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatArchive - сохраненная переписка, завершенная пользователем или по таймауту
type ChatArchive struct {
	ID        string        `json:"id"`
	ChatID    int64         `json:"chat_id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []ChatMessage `json:"messages"`
}

// GenerateID генерирует новый UUID для архива, если он еще не установлен
func (a *ChatArchive) GenerateID() {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
}

// HasUserMessages сообщает, писал ли пользователь что-нибудь кроме приветствия бота
func HasUserMessages(messages []ChatMessage) bool {
	for _, m := range messages {
		if m.Role == RoleUser {
			return true
		}
	}
	return false
}

// ChatTitle строит заголовок архива по первому сообщению пользователя
func ChatTitle(messages []ChatMessage) string {
	for _, m := range messages {
		if m.Role != RoleUser {
			continue
		}
		if utf8.RuneCountInString(m.Content) <= titleLimit {
			return m.Content + "..."
		}
		runes := []rune(m.Content)
		return string(runes[:titleLimit]) + "..."
	}
	return "New Chat"
}
