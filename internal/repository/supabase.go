package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/finbot/internal/model"
)

const chatArchivesTable = "chat_archives"

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) SaveChat(ctx context.Context, chat *model.ChatArchive) error {
	chat.GenerateID()
	_, _, err := r.client.From(chatArchivesTable).Insert(chat, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save chat: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) ListChats(ctx context.Context, chatID int64, limit int) ([]model.ChatArchive, error) {
	query := r.client.From(chatArchivesTable).
		Select("*", "", false).
		Eq("chat_id", strconv.FormatInt(chatID, 10))

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	var chats []model.ChatArchive
	if err := json.Unmarshal(data, &chats); err != nil {
		return nil, fmt.Errorf("failed to parse chats: %w", err)
	}

	// Сортируем на нашей стороне, сначала новые
	sortNewestFirst(chats)
	if limit > 0 && len(chats) > limit {
		chats = chats[:limit]
	}
	return chats, nil
}

func (r *SupabaseRepository) Close() error { return nil }
