package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/repository"
)

// Manager выдает сессии по chat id и архивирует завершенные разговоры
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	repo    repository.Repository
	idleTTL time.Duration
	now     func() time.Time
	log     logrus.FieldLogger
	cron    *cron.Cron
}

// NewManager создает менеджер. idleTTL <= 0 отключает очистку неактивных сессий.
func NewManager(repo repository.Repository, idleTTL time.Duration, log logrus.FieldLogger) *Manager {
	if repo == nil {
		repo = repository.NewMemoryRepository()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		sessions: make(map[int64]*Session),
		repo:     repo,
		idleTTL:  idleTTL,
		now:      time.Now,
		log:      log,
	}
}

// Get возвращает сессию чата, создавая новую при первом обращении
func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		s = newSession(chatID, m.now())
		m.sessions[chatID] = s
	}
	return s
}

// Acquire возвращает заблокированную сессию чата, которая все еще числится
// в менеджере. Если между Get и Lock сессию убрали Sweep или Reset, берется новая.
// Вызывающий обязан вызвать Unlock.
func (m *Manager) Acquire(chatID int64) *Session {
	for {
		s := m.Get(chatID)
		s.Lock()

		m.mu.Lock()
		current := m.sessions[chatID]
		m.mu.Unlock()
		if current == s {
			return s
		}
		s.Unlock()
	}
}

// Reset архивирует текущий разговор и начинает новый с чистым профилем
func (m *Manager) Reset(ctx context.Context, chatID int64) *Session {
	m.mu.Lock()
	old := m.sessions[chatID]
	fresh := newSession(chatID, m.now())
	m.sessions[chatID] = fresh
	m.mu.Unlock()

	if old != nil {
		old.Lock()
		m.save(ctx, old)
		old.Unlock()
	}
	return fresh
}

// History возвращает архив переписок чата, новые первыми
func (m *Manager) History(ctx context.Context, chatID int64, limit int) ([]model.ChatArchive, error) {
	return m.repo.ListChats(ctx, chatID, limit)
}

// Sweep архивирует и удаляет сессии, неактивные дольше idleTTL.
// Занятые в данный момент сессии пропускаются.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTTL)

	var idle []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if !s.TryLock() {
			continue
		}
		if s.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			idle = append(idle, s)
			continue // остается заблокированной до сохранения
		}
		s.Unlock()
	}
	m.mu.Unlock()

	for _, s := range idle {
		m.save(ctx, s)
		s.Unlock()
	}
	if len(idle) > 0 {
		m.log.WithField("count", len(idle)).Info("idle sessions archived")
	}
	return len(idle)
}

// StartSweeper запускает периодическую очистку по cron-выражению с секундами
func (m *Manager) StartSweeper(ctx context.Context, spec string) error {
	if m.idleTTL <= 0 {
		return nil
	}
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, func() { m.Sweep(ctx) }); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	m.cron = c
	c.Start()
	return nil
}

// Stop останавливает очистку и архивирует все открытые разговоры
func (m *Manager) Stop(ctx context.Context) {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}

	m.mu.Lock()
	open := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		open = append(open, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range open {
		s.Lock()
		m.save(ctx, s)
		s.Unlock()
	}
}

// Len возвращает число открытых сессий
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) save(ctx context.Context, s *Session) {
	chat := s.archive(m.now())
	if chat == nil {
		return
	}
	if err := m.repo.SaveChat(ctx, chat); err != nil {
		// Потеря архива не должна мешать разговору
		m.log.WithFields(logrus.Fields{
			"chat_id": s.ChatID,
			"error":   err,
		}).Error("failed to archive chat")
	}
}
