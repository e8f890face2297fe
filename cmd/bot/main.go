package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ivanoskov/finbot/internal/app"
	"github.com/ivanoskov/finbot/internal/bot"
)

func main() {
	a, err := app.New()
	if err != nil {
		app.NewLogger("info").WithError(err).Fatal("failed to start")
	}
	log := a.Log

	if err := a.Config.Validate(); err != nil {
		log.WithError(err).Fatal("config validation")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Sessions.StartSweeper(ctx, a.Config.Session.SweepCron); err != nil {
		log.WithError(err).Fatal("start session sweeper")
	}

	b, err := bot.NewBot(a.Config.Telegram.Token, a.Advisor, a.Sessions, log)
	if err != nil {
		log.WithError(err).Fatal("init telegram bot")
	}

	done := make(chan error, 1)
	go func() { done <- b.Start(ctx) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case err := <-done:
		if err != nil {
			log.WithError(err).Error("bot stopped")
		}
	}

	cancel()
	a.Close(context.Background())
	log.Info("bot stopped")
}
