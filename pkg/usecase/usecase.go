package usecase

import (
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
	"github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/service/analyst"
)

type UseCases struct {
	repo       interfaces.Repository
	analyst    analyst.Service
	scoring    *config.ScoringModel
	metrics    *metrics.Metrics
	Dossier    *DossierUseCase
	Analysis   *AnalysisUseCase
	Mitigation *MitigationUseCase
}

type Option func(*UseCases)

// WithAnalyst enables LLM analysis. Without it every analysis uses the bundled baseline.
func WithAnalyst(svc analyst.Service) Option {
	return func(uc *UseCases) {
		uc.analyst = svc
	}
}

// WithScoringModel replaces the default mitigation scoring model
func WithScoringModel(m *config.ScoringModel) Option {
	return func(uc *UseCases) {
		uc.scoring = m
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(uc *UseCases) {
		uc.metrics = m
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		scoring: config.DefaultScoringModel(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Dossier = NewDossierUseCase(repo)
	uc.Analysis = NewAnalysisUseCase(repo, uc.analyst, uc.metrics)
	uc.Mitigation = NewMitigationUseCase(repo, uc.analyst, uc.scoring, uc.metrics)

	return uc
}

// LLMEnabled reports whether an analyst service is configured
func (uc *UseCases) LLMEnabled() bool {
	return uc.analyst != nil
}
