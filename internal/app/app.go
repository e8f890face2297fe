// Package app собирает зависимости бота из конфигурации.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/finbot/internal/config"
	"github.com/ivanoskov/finbot/internal/polisher"
	"github.com/ivanoskov/finbot/internal/repository"
	"github.com/ivanoskov/finbot/internal/service"
	"github.com/ivanoskov/finbot/internal/session"
)

// App - собранные компоненты, общие для всех точек входа
type App struct {
	Config   *config.Config
	Repo     repository.Repository
	Advisor  *service.Advisor
	Sessions *session.Manager
	Log      *logrus.Logger
}

// ConfigPath возвращает путь к YAML из CONFIG_PATH или путь по умолчанию
func ConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return config.DefaultPath
}

// NewLogger создает logrus-логгер с уровнем из конфигурации
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// New загружает конфигурацию и собирает хранилище, советника и менеджер сессий
func New() (*App, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := NewLogger(cfg.LogLevel)

	repo, err := repository.New(repository.Options{
		SupabaseURL: cfg.Supabase.URL,
		SupabaseKey: cfg.Supabase.Key,
		SQLitePath:  cfg.Database.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	p := polisher.New(polisher.Config{
		Provider: cfg.Polisher.Provider,
		Token:    cfg.Polisher.Token,
		Model:    cfg.Polisher.Model,
		BaseURL:  cfg.Polisher.BaseURL,
		Proxy:    cfg.Proxy,
		Timeout:  cfg.Polisher.Timeout,
	}, log)

	return &App{
		Config:   cfg,
		Repo:     repo,
		Advisor:  service.NewAdvisor(p, log),
		Sessions: session.NewManager(repo, cfg.Session.IdleTTL, log),
		Log:      log,
	}, nil
}

// Close архивирует открытые разговоры и закрывает хранилище
func (a *App) Close(ctx context.Context) {
	a.Sessions.Stop(ctx)
	if err := a.Repo.Close(); err != nil {
		a.Log.WithError(err).Warn("failed to close repository")
	}
}
