package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/cli/config"
)

func TestLLM_ResolveProvider(t *testing.T) {
	tests := []struct {
		name          string
		provider      string
		apiKey        string
		geminiProject string
		want          string
	}{
		{name: "auto without credentials", provider: "auto", want: config.ProviderNone},
		{name: "auto with OpenAI key", provider: "auto", apiKey: "sk-test", want: config.ProviderOpenAI},
		{name: "auto with Gemini project", provider: "auto", geminiProject: "my-project", want: config.ProviderGemini},
		{name: "auto prefers OpenAI", provider: "auto", apiKey: "sk-test", geminiProject: "my-project", want: config.ProviderOpenAI},
		{name: "explicit provider", provider: "gemini", apiKey: "sk-test", want: config.ProviderGemini},
		{name: "empty means auto", provider: "", want: config.ProviderNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewLLMForTest(tt.provider, tt.apiKey, tt.geminiProject)
			gt.Value(t, cfg.ResolveProvider()).Equal(tt.want)
		})
	}
}

func TestLLM_Configure(t *testing.T) {
	t.Run("no provider", func(t *testing.T) {
		svc, err := config.NewLLMForTest("auto", "", "").Configure(t.Context(), nil)
		gt.NoError(t, err)
		gt.Value(t, svc).Nil()
	})

	t.Run("openai", func(t *testing.T) {
		svc, err := config.NewLLMForTest("auto", "sk-test", "").Configure(t.Context(), nil)
		gt.NoError(t, err)
		gt.Value(t, svc).NotNil()
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := config.NewLLMForTest("openai", "", "").Configure(t.Context(), nil)
		gt.Error(t, err).Is(config.ErrMissingAPIKey)
	})

	t.Run("gemini without project", func(t *testing.T) {
		_, err := config.NewLLMForTest("gemini", "", "").Configure(t.Context(), nil)
		gt.Error(t, err).Is(config.ErrMissingProjectID)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := config.NewLLMForTest("claude", "", "").Configure(t.Context(), nil)
		gt.Error(t, err).Is(config.ErrUnknownProvider)
	})

	t.Run("flags", func(t *testing.T) {
		flags := config.NewLLMForTest("auto", "", "").Flags()
		gt.Value(t, len(flags)).Equal(7)
	})
}
