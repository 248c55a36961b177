package analyst

import (
	"context"

	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/cipher/pkg/domain/model"
)

// Service asks an LLM to score dossiers and assess mitigation proposals.
// Every failure is returned to the caller; choosing a fallback is not its concern.
type Service interface {
	// Analyze scores the FOCI risk of a dossier from its data points
	Analyze(ctx context.Context, dossier *model.Dossier) (*model.AnalysisResult, error)

	// AssessMitigation estimates how proposed changes affect an analysed risk profile
	AssessMitigation(ctx context.Context, input MitigationInput) (*model.MitigationImpact, error)
}

// MitigationInput is the original analysis and the changes to evaluate
type MitigationInput struct {
	OriginalScore int
	OriginalRisks []model.Risk
	Settings      model.MitigationSettings
}

// Operation names the kind of LLM request, used for logging and metrics
type Operation string

const (
	OperationAnalysis   Operation = "analysis"
	OperationMitigation Operation = "mitigation"
)

func (o Operation) String() string {
	return string(o)
}

// Backend sends a single chat completion request and returns the raw text reply
type Backend interface {
	Generate(ctx context.Context, req *Request) (string, error)
}

// Request is a provider independent completion request
type Request struct {
	Operation    Operation
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	// Schema is passed to providers that support structured output
	Schema *gollem.Parameter
}

// analysisResponse is the structured output for Analyze
type analysisResponse struct {
	RiskScore float64        `json:"riskScore"`
	RiskLevel string         `json:"riskLevel"`
	Risks     []responseRisk `json:"risks"`
}

type responseRisk struct {
	Type        string     `json:"type"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	Evidence    stringList `json:"evidence"`
}

// mitigationResponse is the structured output for AssessMitigation
type mitigationResponse struct {
	NewRiskScore      float64    `json:"newRiskScore"`
	NewRiskLevel      string     `json:"newRiskLevel"`
	ImpactSummary     string     `json:"impactSummary"`
	RemainingConcerns stringList `json:"remainingConcerns"`
}
