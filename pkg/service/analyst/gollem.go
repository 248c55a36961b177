package analyst

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// gollemBackend runs requests through a gollem LLM client such as Gemini
type gollemBackend struct {
	llmClient gollem.LLMClient
}

// NewGollemBackend creates a Backend on top of a gollem LLM client
func NewGollemBackend(llmClient gollem.LLMClient) (Backend, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &gollemBackend{llmClient: llmClient}, nil
}

func (b *gollemBackend) Generate(ctx context.Context, req *Request) (string, error) {
	opts := []gollem.SessionOption{
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(req.SystemPrompt),
	}
	if req.Schema != nil {
		opts = append(opts, gollem.WithSessionResponseSchema(req.Schema))
	}

	session, err := b.llmClient.NewSession(ctx, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session", goerr.V("operation", req.Operation))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(req.UserPrompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM", goerr.V("operation", req.Operation))
	}

	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.Wrap(ErrEmptyResponse, "LLM returned no text", goerr.V("operation", req.Operation))
	}

	return strings.Join(resp.Texts, ""), nil
}
