package analyst

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenAITemperature = float32(0.3)
)

type openaiBackend struct {
	client      *openai.Client
	model       string
	temperature float32
}

type openaiConfig struct {
	model       string
	baseURL     string
	temperature float32
}

// OpenAIOption configures the OpenAI backend
type OpenAIOption func(*openaiConfig)

// WithOpenAIModel sets the chat completion model
func WithOpenAIModel(model string) OpenAIOption {
	return func(c *openaiConfig) {
		c.model = model
	}
}

// WithOpenAIBaseURL points the client at an OpenAI compatible endpoint
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(c *openaiConfig) {
		c.baseURL = baseURL
	}
}

// WithOpenAITemperature sets the sampling temperature
func WithOpenAITemperature(t float32) OpenAIOption {
	return func(c *openaiConfig) {
		c.temperature = t
	}
}

// NewOpenAIBackend creates a Backend using the OpenAI chat completions API
func NewOpenAIBackend(apiKey string, opts ...OpenAIOption) (Backend, error) {
	if apiKey == "" {
		return nil, goerr.New("OpenAI API key is required")
	}

	cfg := &openaiConfig{
		model:       DefaultOpenAIModel,
		temperature: DefaultOpenAITemperature,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientConfig.BaseURL = cfg.baseURL
	}

	return &openaiBackend{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.model,
		temperature: cfg.temperature,
	}, nil
}

func (b *openaiBackend) Generate(ctx context.Context, req *Request) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: b.temperature,
		MaxTokens:   req.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", goerr.Wrap(err, "OpenAI chat completion failed",
			goerr.V("model", b.model),
			goerr.V("operation", req.Operation),
		)
	}

	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(ErrEmptyResponse, "OpenAI returned no choices", goerr.V("model", b.model))
	}

	return resp.Choices[0].Message.Content, nil
}
