package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/service"
)

const historyLimit = 10

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start", "reset", "new":
		return b.handleStart(ctx, message.Chat.ID)
	case "history":
		return b.handleHistory(ctx, message.Chat.ID)
	default:
		// Неизвестную команду отдаем машине состояний как обычный текст
		return b.handleMessage(ctx, message)
	}
}

// handleStart начинает новый разговор, архивируя предыдущий
func (b *Bot) handleStart(ctx context.Context, chatID int64) error {
	sess := b.sessions.Reset(ctx, chatID)

	msg := tgbotapi.NewMessage(chatID, service.Greeting)
	msg.ReplyMarkup = b.keyboardFor(sess.Profile)
	return b.send(msg)
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) error {
	chats, err := b.sessions.History(ctx, chatID, historyLimit)
	if err != nil {
		b.log.WithField("chat_id", chatID).WithError(err).Error("failed to load history")
		return b.sendErrorMessage(chatID, "Couldn't load your chat history right now.")
	}

	if len(chats) == 0 {
		return b.send(tgbotapi.NewMessage(chatID,
			"No chat history available. Start a new conversation to save your history!"))
	}

	var sb strings.Builder
	sb.WriteString("📜 Chat history:\n\n")
	for _, c := range chats {
		sb.WriteString(fmt.Sprintf("• %s - %s (%d messages)\n",
			c.Title, c.CreatedAt.Format("2006-01-02 15:04"), len(c.Messages)))
	}
	return b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

// handleCallback обрабатывает inline-кнопки так же, как текст
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil {
		return nil
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	if _, err := b.out.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.WithError(err).Warn("failed to answer callback")
	}

	return b.converse(ctx, callback.Message.Chat.ID, callback.Data)
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	if message.Text == "" {
		return nil
	}
	return b.converse(ctx, message.Chat.ID, message.Text)
}

// converse проводит одну реплику пользователя через машину состояний
func (b *Bot) converse(ctx context.Context, chatID int64, text string) error {
	utterance := utteranceFor(text)

	sess := b.sessions.Acquire(chatID)
	sess.Record(model.RoleUser, utterance, time.Now())
	reply := b.advisor.Turn(ctx, utterance, sess.Profile)
	sess.Record(model.RoleAssistant, reply.Text, time.Now())
	keyboard := b.keyboardFor(sess.Profile)
	sess.Unlock()

	b.log.WithFields(logrus.Fields{
		"chat_id": chatID,
		"intent":  reply.Intent,
		"state":   reply.State,
	}).Debug("reply ready")

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ReplyMarkup = keyboard
	if err := b.send(msg); err != nil {
		return err
	}

	b.sendCharts(chatID, reply)
	return nil
}

// sendCharts отправляет график к завершенному сценарию. Ошибки только логируются.
func (b *Bot) sendCharts(chatID int64, reply service.Reply) {
	var (
		png  []byte
		err  error
		name string
	)
	switch {
	case reply.Budget != nil:
		png, err = b.charts.BudgetChart(*reply.Budget)
		name = "budget.png"
	case reply.Emergency != nil:
		png, err = b.charts.EmergencyChart(*reply.Emergency)
		name = "emergency_fund.png"
	case reply.Goal != nil:
		png, err = b.charts.GoalChart(*reply.Goal)
		name = "goal.png"
	default:
		return
	}

	if err != nil {
		b.log.WithField("chat_id", chatID).WithError(err).Warn("failed to render chart")
		return
	}
	if png == nil {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	if err := b.send(photo); err != nil {
		b.log.WithField("chat_id", chatID).WithError(err).Warn("failed to send chart")
	}
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	if _, err := b.out.Send(c); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (b *Bot) sendErrorMessage(chatID int64, text string) error {
	return b.send(tgbotapi.NewMessage(chatID, "❌ "+text))
}
