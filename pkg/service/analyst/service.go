package analyst

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
)

const (
	defaultAnalysisMaxTokens   = 1500
	defaultMitigationMaxTokens = 800
)

// client implements Service interface
type client struct {
	backend             Backend
	metrics             *metrics.Metrics
	analysisMaxTokens   int
	mitigationMaxTokens int
}

// Option is a functional option for client configuration
type Option func(*client)

// WithMetrics records LLM latency
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *client) {
		c.metrics = m
	}
}

// WithMaxTokens overrides the completion budget of each operation
func WithMaxTokens(analysis, mitigation int) Option {
	return func(c *client) {
		c.analysisMaxTokens = analysis
		c.mitigationMaxTokens = mitigation
	}
}

// New creates a new analyst service on top of an LLM backend
func New(backend Backend, opts ...Option) (Service, error) {
	if backend == nil {
		return nil, goerr.New("LLM backend is required")
	}

	c := &client{
		backend:             backend,
		analysisMaxTokens:   defaultAnalysisMaxTokens,
		mitigationMaxTokens: defaultMitigationMaxTokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Analyze scores the FOCI risk of a dossier. A single attempt is made.
func (c *client) Analyze(ctx context.Context, dossier *model.Dossier) (*model.AnalysisResult, error) {
	userPrompt, err := buildAnalysisPrompt(dossier)
	if err != nil {
		return nil, err
	}

	text, err := c.generate(ctx, &Request{
		Operation:    OperationAnalysis,
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    c.analysisMaxTokens,
		Schema:       analysisResponseSchema(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to analyze dossier", goerr.V("dossier_id", dossier.ID))
	}

	if err := validateResponse(analysisSchema, text); err != nil {
		return nil, goerr.Wrap(err, "invalid analysis response", goerr.V("dossier_id", dossier.ID))
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, goerr.Wrap(ErrInvalidResponse, "failed to parse analysis response",
			goerr.V("cause", err.Error()),
			goerr.V("response", text),
		)
	}

	result := &model.AnalysisResult{
		RiskScore: int(math.Round(resp.RiskScore)),
		RiskLevel: types.RiskLevel(resp.RiskLevel),
		Risks:     make([]model.Risk, 0, len(resp.Risks)),
	}
	for _, r := range resp.Risks {
		result.Risks = append(result.Risks, model.Risk{
			Type:        types.ConcernArea(r.Type),
			Severity:    r.Severity,
			Description: r.Description,
			Evidence:    strings.Join(r.Evidence, "; "),
		})
	}

	if err := result.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidResponse, err.Error(), goerr.V("response", text))
	}

	logging.From(ctx).Debug("dossier analyzed by LLM",
		"dossier_id", dossier.ID,
		"risk_score", result.RiskScore,
		"risk_level", result.RiskLevel,
		"risks", len(result.Risks),
	)

	return result, nil
}

// AssessMitigation estimates the effect of proposed changes. A single attempt is made.
func (c *client) AssessMitigation(ctx context.Context, input MitigationInput) (*model.MitigationImpact, error) {
	userPrompt, err := buildMitigationPrompt(input)
	if err != nil {
		return nil, err
	}

	text, err := c.generate(ctx, &Request{
		Operation:    OperationMitigation,
		SystemPrompt: mitigationSystemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    c.mitigationMaxTokens,
		Schema:       mitigationResponseSchema(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to assess mitigation")
	}

	if err := validateResponse(mitigationSchema, text); err != nil {
		return nil, goerr.Wrap(err, "invalid mitigation response")
	}

	var resp mitigationResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, goerr.Wrap(ErrInvalidResponse, "failed to parse mitigation response",
			goerr.V("cause", err.Error()),
			goerr.V("response", text),
		)
	}

	concerns := []string(resp.RemainingConcerns)
	if concerns == nil {
		concerns = []string{}
	}

	return &model.MitigationImpact{
		NewRiskScore:      int(math.Round(resp.NewRiskScore)),
		NewRiskLevel:      types.RiskLevel(resp.NewRiskLevel),
		ImpactSummary:     resp.ImpactSummary,
		RemainingConcerns: concerns,
		Source:            types.AnalysisSourceLLM,
	}, nil
}

// generate calls the backend once and returns the JSON body of the reply
func (c *client) generate(ctx context.Context, req *Request) (string, error) {
	start := time.Now()
	text, err := c.backend.Generate(ctx, req)
	c.metrics.ObserveLLMLatency(req.Operation.String(), time.Since(start))
	if err != nil {
		return "", err
	}

	text = stripCodeFence(text)
	if text == "" {
		return "", goerr.Wrap(ErrEmptyResponse, "LLM returned no content", goerr.V("operation", req.Operation))
	}
	return text, nil
}
