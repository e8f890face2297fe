package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/ivanoskov/finbot/internal/app"
	"github.com/ivanoskov/finbot/internal/bot"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Бот создается один раз на экземпляр функции, чтобы сессии
// переживали соседние вызовы
var (
	initOnce sync.Once
	instance *bot.Bot
	initErr  error
)

func getBot() (*bot.Bot, error) {
	initOnce.Do(func() {
		a, err := app.New()
		if err != nil {
			initErr = err
			return
		}
		if err := a.Config.Validate(); err != nil {
			initErr = err
			return
		}
		instance, initErr = bot.NewBot(a.Config.Telegram.Token, a.Advisor, a.Sessions, a.Log)
	})
	return instance, initErr
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	b, err := getBot()
	if err != nil {
		return errorResponse(err)
	}

	// Обработка webhook-обновления
	if err := b.HandleWebhook(ctx, []byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
