// Package session хранит разговоры по чатам: профиль, переписку и время активности.
package session

import (
	"sync"
	"time"

	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/service"
)

// Session - один разговор. Реплики одного чата обрабатываются по очереди
// под Lock, поэтому профиль никогда не разделяется между горутинами.
type Session struct {
	mu sync.Mutex

	ChatID     int64
	Profile    *model.Profile
	Messages   []model.ChatMessage
	StartedAt  time.Time
	LastActive time.Time
}

func newSession(chatID int64, now time.Time) *Session {
	return &Session{
		ChatID:  chatID,
		Profile: model.NewProfile(),
		Messages: []model.ChatMessage{
			{Role: model.RoleAssistant, Content: service.Greeting, Timestamp: now},
		},
		StartedAt:  now,
		LastActive: now,
	}
}

func (s *Session) Lock()         { s.mu.Lock() }
func (s *Session) Unlock()       { s.mu.Unlock() }
func (s *Session) TryLock() bool { return s.mu.TryLock() }

// Record добавляет реплику в переписку и отмечает активность
func (s *Session) Record(role, content string, at time.Time) {
	s.Messages = append(s.Messages, model.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: at,
	})
	s.LastActive = at
}

// archive возвращает архив переписки или nil, если пользователь ничего не писал
func (s *Session) archive(at time.Time) *model.ChatArchive {
	if !model.HasUserMessages(s.Messages) {
		return nil
	}
	return &model.ChatArchive{
		ChatID:    s.ChatID,
		Title:     model.ChatTitle(s.Messages),
		CreatedAt: at,
		Messages:  append([]model.ChatMessage(nil), s.Messages...),
	}
}
