package repository

import (
	"context"

	"github.com/ivanoskov/finbot/internal/model"
)

// Repository хранит архив завершенных переписок.
// Состояние текущего разговора сюда не попадает.
type Repository interface {
	SaveChat(ctx context.Context, chat *model.ChatArchive) error
	// ListChats возвращает архивы чата, новые первыми. limit <= 0 - без ограничения.
	ListChats(ctx context.Context, chatID int64, limit int) ([]model.ChatArchive, error)
	Close() error
}

// Options выбирает хранилище
type Options struct {
	SupabaseURL string
	SupabaseKey string
	SQLitePath  string
}

// New выбирает Supabase, затем SQLite, иначе хранит архив в памяти
func New(opts Options) (Repository, error) {
	if opts.SupabaseURL != "" && opts.SupabaseKey != "" {
		return NewSupabaseRepository(opts.SupabaseURL, opts.SupabaseKey)
	}
	if opts.SQLitePath != "" {
		return NewSQLiteRepository(opts.SQLitePath)
	}
	return NewMemoryRepository(), nil
}
