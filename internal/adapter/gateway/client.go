package gateway

import (
	"context"
	"fmt"
	"net/http"
	"quizwhiz/internal/config"
	"quizwhiz/internal/domain"
	"quizwhiz/internal/logger"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Client is the inference gateway. One operation: send a prompt, get the raw
// model text back. The gateway guarantees nothing about response shape;
// callers own validation of whatever comes back.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// caller is the subset of the langchaingo model surface the gateway needs.
type caller interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

type llmClient struct {
	model   caller
	timeout time.Duration
}

// NewClient builds the provider-specific langchaingo model from config.
func NewClient(cfg config.LLMConfig) (Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	var model caller
	var err error
	switch cfg.Provider {
	case "ollama":
		httpClient := &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     10 * time.Second,
			},
		}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &llmClient{model: model, timeout: timeout}, nil
}

// Generate implements Client.
func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := c.model.Call(ctx, prompt, llms.WithTemperature(0.1))
	if err != nil {
		if err == context.DeadlineExceeded {
			l.Error("LLM request timed out", zap.Error(err))
			return "", domain.NewLLMServiceError(err)
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return "", domain.NewLLMServiceError(err)
	}

	return response, nil
}

// CleanResponse strips reasoning tags and markdown code fences that chat
// models wrap around JSON payloads.
func CleanResponse(response string) string {
	s := strings.TrimSpace(response)
	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 {
			s = s[thinkEnd+len("</think>"):]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
