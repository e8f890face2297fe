package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ivanoskov/finbot/internal/model"
)

// SQLiteRepository хранит архив переписок в файле SQLite
type SQLiteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRepository открывает (или создает) базу и применяет миграции
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// :memory: живет в рамках одного соединения
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chat_archives (
			id         TEXT PRIMARY KEY,
			chat_id    INTEGER NOT NULL,
			title      TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			messages   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_archives_chat ON chat_archives(chat_id, created_at)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRepository) SaveChat(ctx context.Context, chat *model.ChatArchive) error {
	chat.GenerateID()
	messages, err := json.Marshal(chat.Messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.ExecContext(ctx, `INSERT INTO chat_archives
		(id, chat_id, title, created_at, messages)
		VALUES (?,?,?,?,?)`,
		chat.ID, chat.ChatID, chat.Title, chat.CreatedAt.UnixNano(), string(messages),
	)
	if err != nil {
		return fmt.Errorf("failed to save chat: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListChats(ctx context.Context, chatID int64, limit int) ([]model.ChatArchive, error) {
	query := `SELECT id, chat_id, title, created_at, messages
		FROM chat_archives WHERE chat_id = ? ORDER BY created_at DESC`
	args := []any{chatID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	chats := make([]model.ChatArchive, 0)
	for rows.Next() {
		var (
			c         model.ChatArchive
			createdAt int64
			messages  string
		)
		if err := rows.Scan(&c.ID, &c.ChatID, &c.Title, &createdAt, &messages); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		c.CreatedAt = time.Unix(0, createdAt)
		if err := json.Unmarshal([]byte(messages), &c.Messages); err != nil {
			return nil, fmt.Errorf("parse messages of chat %s: %w", c.ID, err)
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
