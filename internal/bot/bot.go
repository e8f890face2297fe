package bot

import (
	"context"
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/finbot/internal/charts"
	"github.com/ivanoskov/finbot/internal/service"
	"github.com/ivanoskov/finbot/internal/session"
)

// sender - часть BotAPI, которой бот отправляет сообщения
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	advisor  *service.Advisor
	sessions *session.Manager
	charts   *charts.ChartGenerator
	log      logrus.FieldLogger
}

func NewBot(token string, advisor *service.Advisor, sessions *session.Manager, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := newBot(api, advisor, sessions, log)
	b.api = api
	return b, nil
}

func newBot(out sender, advisor *service.Advisor, sessions *session.Manager, log logrus.FieldLogger) *Bot {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bot{
		out:      out,
		advisor:  advisor,
		sessions: sessions,
		charts:   charts.NewChartGenerator(),
		log:      log,
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(ctx, update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(ctx, update.CallbackQuery)
	}

	return b.handleMessage(ctx, update.Message)
}

// Start запускает бота в режиме long polling до отмены ctx
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.WithField("username", b.api.Self.UserName).Info("bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handleUpdate(ctx, update); err != nil {
				// Логируем ошибку, но продолжаем работу
				b.log.WithField("update_id", update.UpdateID).WithError(err).Error("error handling update")
			}
		}
	}
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(ctx context.Context, body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(ctx, update)
}
