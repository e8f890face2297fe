package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ivanoskov/finbot/internal/model"
)

// MemoryRepository держит архив в памяти процесса
type MemoryRepository struct {
	mu    sync.Mutex
	chats []model.ChatArchive
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveChat(_ context.Context, chat *model.ChatArchive) error {
	chat.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *chat
	stored.Messages = append([]model.ChatMessage(nil), chat.Messages...)
	r.chats = append(r.chats, stored)
	return nil
}

func (r *MemoryRepository) ListChats(_ context.Context, chatID int64, limit int) ([]model.ChatArchive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]model.ChatArchive, 0)
	for _, c := range r.chats {
		if c.ChatID == chatID {
			result = append(result, c)
		}
	}
	sortNewestFirst(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *MemoryRepository) Close() error { return nil }

func sortNewestFirst(chats []model.ChatArchive) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].CreatedAt.After(chats[j].CreatedAt)
	})
}
