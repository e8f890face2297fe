// Package polisher переписывает готовые ответы бота через внешнюю модель.
// Любая ошибка внешнего сервиса превращается в исходный ответ без изменений.
package polisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/finbot/internal/model"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderNone        = "none"

	DefaultModel   = "google/flan-t5-small"
	DefaultTimeout = 30 * time.Second

	maxNewTokens = 200
	temperature  = 0.2
)

// ErrNoText - ответ сервиса не содержит сгенерированного текста
var ErrNoText = errors.New("no generated text in response")

// Polisher улучшает формулировку ответа, сохраняя все числа
type Polisher interface {
	Polish(ctx context.Context, core, question string, profile *model.Profile) string
}

// Backend выполняет один запрос к модели
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config описывает подключение к модели
type Config struct {
	Provider string
	Token    string
	Model    string
	BaseURL  string
	Proxy    string
	Timeout  time.Duration
}

// New выбирает бэкенд по конфигурации. Без токена возвращает Noop и запросов не делает.
func New(cfg Config, log logrus.FieldLogger) Polisher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Token == "" {
		log.Info("polisher disabled: no token configured")
		return Noop{}
	}

	var backend Backend
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderHuggingFace:
		backend = NewHuggingFace(cfg)
	case ProviderOpenAI:
		backend = NewOpenAI(cfg)
	case ProviderNone:
		return Noop{}
	default:
		log.WithField("provider", cfg.Provider).Warn("unknown polisher provider, polishing disabled")
		return Noop{}
	}

	log.WithFields(logrus.Fields{
		"backend": backend.Name(),
		"model":   cfg.Model,
	}).Info("polisher enabled")
	return NewGuard(backend, cfg.Timeout, log)
}

// BuildPrompt собирает инструкцию для модели
func BuildPrompt(question, core string) string {
	return "You are an expert but friendly personal finance assistant. " +
		"Polish and simplify the following reply so it is clear, concise, " +
		"and easy to understand. Keep any numerical values or currencies unchanged.\n\n" +
		fmt.Sprintf("User question: %s\n\n", question) +
		fmt.Sprintf("Reply: %s\n\n", core) +
		"Polished reply:"
}

// Noop возвращает ответ как есть
type Noop struct{}

func (Noop) Polish(_ context.Context, core, _ string, _ *model.Profile) string { return core }

// Guard оборачивает Backend: ограничивает время запроса, перехватывает
// ошибки и панику и всегда возвращает хотя бы исходный ответ.
type Guard struct {
	backend Backend
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewGuard создает Guard. Нулевой timeout заменяется на DefaultTimeout.
func NewGuard(backend Backend, timeout time.Duration, log logrus.FieldLogger) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Guard{backend: backend, timeout: timeout, log: log}
}

func (g *Guard) Polish(ctx context.Context, core, question string, profile *model.Profile) (out string) {
	if g == nil || g.backend == nil {
		return core
	}

	out = core
	defer func() {
		if r := recover(); r != nil {
			g.log.WithField("backend", g.backend.Name()).Debugf("polisher panic: %v", r)
			out = core
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.backend.Generate(ctx, BuildPrompt(question, core))
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"backend": g.backend.Name(),
			"error":   err,
		}).Debug("polish failed, using core reply")
		return core
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return core
	}
	return text
}
