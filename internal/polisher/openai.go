package polisher

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAI работает с любым OpenAI-совместимым chat completions API
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI создает клиент. BaseURL позволяет указать совместимый сервер.
func NewOpenAI(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.Token)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = newHTTPClient(cfg.Proxy)

	modelID := cfg.Model
	if modelID == "" || modelID == DefaultModel {
		modelID = defaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  modelID,
	}
}

func (o *OpenAI) Name() string { return ProviderOpenAI }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxNewTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoText
	}
	return resp.Choices[0].Message.Content, nil
}
