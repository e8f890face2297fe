package polisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFace ходит в Hugging Face Inference API
type HuggingFace struct {
	Token  string
	URL    string
	Client *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// NewHuggingFace создает клиент с поддержкой прокси
func NewHuggingFace(cfg Config) *HuggingFace {
	modelID := cfg.Model
	if modelID == "" {
		modelID = DefaultModel
	}
	base := cfg.BaseURL
	if base == "" {
		base = huggingFaceBaseURL
	}
	return &HuggingFace{
		Token:  cfg.Token,
		URL:    strings.TrimRight(base, "/") + "/" + modelID,
		Client: newHTTPClient(cfg.Proxy),
	}
}

func (h *HuggingFace) Name() string { return ProviderHuggingFace }

// Generate отправляет prompt и достает generated_text из ответа
func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens: maxNewTokens,
			Temperature:  temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API error: status %d", resp.StatusCode)
	}

	text, ok := extractGeneratedText(respBody)
	if !ok {
		return "", ErrNoText
	}
	return text, nil
}

// extractGeneratedText понимает три формы ответа:
// [{"generated_text": "..."}], {"generated_text": "..."} и просто строку.
func extractGeneratedText(body []byte) (string, bool) {
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return "", false
		}
		text, ok := list[0]["generated_text"].(string)
		return text, ok
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		text, ok := obj["generated_text"].(string)
		return text, ok
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		return text, true
	}
	return "", false
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	// Общий лимит времени задает Guard через контекст
	return &http.Client{Transport: transport}
}
