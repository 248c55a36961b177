package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/service/analyst"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// LLM holds CLI flags for the analyst service
type LLM struct {
	Provider    string
	APIKey      string `masq:"secret"`
	Model       string
	BaseURL     string
	Temperature float64

	gemini Gemini
}

// Flags returns CLI flags for LLM configuration
func (x *LLM) Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider (auto, openai, gemini, none). auto picks the first configured one",
			Value:       ProviderAuto,
			Category:    "LLM",
			Sources:     cli.EnvVars("CIPHER_LLM_PROVIDER"),
			Destination: &x.Provider,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "LLM",
			Sources:     cli.EnvVars("CIPHER_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &x.APIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI chat model",
			Value:       analyst.DefaultOpenAIModel,
			Category:    "LLM",
			Sources:     cli.EnvVars("CIPHER_OPENAI_MODEL"),
			Destination: &x.Model,
		},
		&cli.StringFlag{
			Name:        "openai-base-url",
			Usage:       "OpenAI compatible API base URL",
			Category:    "LLM",
			Sources:     cli.EnvVars("CIPHER_OPENAI_BASE_URL"),
			Destination: &x.BaseURL,
		},
		&cli.FloatFlag{
			Name:        "openai-temperature",
			Usage:       "Sampling temperature",
			Value:       0.3,
			Category:    "LLM",
			Sources:     cli.EnvVars("CIPHER_OPENAI_TEMPERATURE"),
			Destination: &x.Temperature,
		},
	}

	return append(flags, x.gemini.Flags()...)
}

// provider resolves "auto" to a concrete provider
func (x *LLM) provider() string {
	if x.Provider != ProviderAuto && x.Provider != "" {
		return x.Provider
	}
	switch {
	case x.APIKey != "":
		return ProviderOpenAI
	case x.gemini.projectID != "":
		return ProviderGemini
	default:
		return ProviderNone
	}
}

// Configure builds the analyst service. It returns nil when no provider is configured,
// in which case every analysis uses the bundled fallback results.
func (x *LLM) Configure(ctx context.Context, m *metrics.Metrics) (analyst.Service, error) {
	provider := x.provider()

	var backend analyst.Backend
	switch provider {
	case ProviderNone:
		logging.From(ctx).Info("No LLM configured, analyses use bundled fallback results")
		return nil, nil

	case ProviderOpenAI:
		if x.APIKey == "" {
			return nil, goerr.Wrap(ErrMissingAPIKey, "openai provider selected", goerr.V(ProviderKey, provider))
		}
		opts := []analyst.OpenAIOption{
			analyst.WithOpenAIModel(x.Model),
			analyst.WithOpenAITemperature(float32(x.Temperature)),
		}
		if x.BaseURL != "" {
			opts = append(opts, analyst.WithOpenAIBaseURL(x.BaseURL))
		}

		b, err := analyst.NewOpenAIBackend(x.APIKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI backend")
		}
		backend = b

	case ProviderGemini:
		client, err := x.gemini.Configure(ctx)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, goerr.Wrap(ErrMissingProjectID, "gemini provider selected", goerr.V(ProviderKey, provider))
		}

		b, err := analyst.NewGollemBackend(client)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini backend")
		}
		backend = b

	default:
		return nil, goerr.Wrap(ErrUnknownProvider, "invalid --llm-provider", goerr.V(ProviderKey, x.Provider))
	}

	svc, err := analyst.New(backend, analyst.WithMetrics(m))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create analyst service")
	}

	logging.From(ctx).Info("LLM analyst enabled", "provider", provider, "llm", x)
	return svc, nil
}
