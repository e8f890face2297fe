package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ivanoskov/finbot/internal/model"
)

func archive(chatID int64, title string, at time.Time) *model.ChatArchive {
	return &model.ChatArchive{
		ChatID:    chatID,
		Title:     title,
		CreatedAt: at,
		Messages: []model.ChatMessage{
			{Role: model.RoleAssistant, Content: "Hello!", Timestamp: at},
			{Role: model.RoleUser, Content: title, Timestamp: at},
		},
	}
}

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := archive(1, "first", base)
	second := archive(1, "second", base.Add(time.Hour))
	other := archive(2, "other", base.Add(2*time.Hour))

	for _, c := range []*model.ChatArchive{first, second, other} {
		if err := repo.SaveChat(ctx, c); err != nil {
			t.Fatalf("save %s: %v", c.Title, err)
		}
		if c.ID == "" {
			t.Fatalf("save %s: id not generated", c.Title)
		}
	}

	chats, err := repo.ListChats(ctx, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(chats))
	}
	if chats[0].Title != "second" || chats[1].Title != "first" {
		t.Errorf("expected newest first, got %q, %q", chats[0].Title, chats[1].Title)
	}
	if len(chats[0].Messages) != 2 || chats[0].Messages[1].Role != model.RoleUser {
		t.Errorf("messages not stored: %+v", chats[0].Messages)
	}
	if !chats[0].CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("timestamp mismatch: %v vs %v", chats[0].CreatedAt, second.CreatedAt)
	}

	limited, err := repo.ListChats(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Title != "second" {
		t.Errorf("limit not applied: %+v", limited)
	}

	none, err := repo.ListChats(ctx, 42, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no chats for unknown id, got %d", len(none))
	}
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestSQLiteRepository(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "chats.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	exerciseRepository(t, repo)
}

func TestNew_SelectsBackend(t *testing.T) {
	repo, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.(*MemoryRepository); !ok {
		t.Errorf("expected memory repository, got %T", repo)
	}

	repo, err = New(Options{SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	if _, ok := repo.(*SQLiteRepository); !ok {
		t.Errorf("expected sqlite repository, got %T", repo)
	}
}
