package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/service/analyst"
	"github.com/secmon-lab/cipher/pkg/utils/async"
	"github.com/secmon-lab/cipher/pkg/utils/errutil"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
)

type AnalysisUseCase struct {
	repo    interfaces.Repository
	analyst analyst.Service
	metrics *metrics.Metrics
}

func NewAnalysisUseCase(repo interfaces.Repository, svc analyst.Service, m *metrics.Metrics) *AnalysisUseCase {
	return &AnalysisUseCase{
		repo:    repo,
		analyst: svc,
		metrics: m,
	}
}

// Start records a PROCESSING analysis and completes it in the background.
// The background task is detached from ctx, so request cancellation does not stop it.
func (uc *AnalysisUseCase) Start(ctx context.Context, dossierID types.DossierID) (*model.Analysis, error) {
	dossier, err := uc.repo.Dossier().Get(ctx, dossierID)
	if err != nil {
		return nil, wrapDossierErr(err, dossierID)
	}

	analysis := model.NewAnalysis(dossierID, time.Now().UTC())
	if err := uc.repo.Analysis().Put(ctx, analysis); err != nil {
		return nil, goerr.Wrap(err, "failed to save analysis", goerr.V(AnalysisIDKey, analysis.ID))
	}

	logging.From(ctx).Info("analysis started",
		"analysis_id", analysis.ID,
		"dossier_id", dossierID,
	)

	pending := analysis.Clone()
	async.Dispatch(ctx, "analysis", func(ctx context.Context) error {
		return uc.complete(ctx, pending, dossier)
	})

	return analysis, nil
}

// Run analyses a dossier and waits for the result
func (uc *AnalysisUseCase) Run(ctx context.Context, dossierID types.DossierID) (*model.Analysis, error) {
	dossier, err := uc.repo.Dossier().Get(ctx, dossierID)
	if err != nil {
		return nil, wrapDossierErr(err, dossierID)
	}

	analysis := model.NewAnalysis(dossierID, time.Now().UTC())
	if err := uc.complete(ctx, analysis, dossier); err != nil {
		return nil, err
	}
	return analysis, nil
}

// Get returns an analysis by ID
func (uc *AnalysisUseCase) Get(ctx context.Context, id model.AnalysisID) (*model.Analysis, error) {
	return getAnalysis(ctx, uc.repo, id)
}

func getAnalysis(ctx context.Context, repo interfaces.Repository, id model.AnalysisID) (*model.Analysis, error) {
	analysis, err := repo.Analysis().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAnalysisNotFound, "failed to look up analysis", goerr.V(AnalysisIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get analysis", goerr.V(AnalysisIDKey, id))
	}
	return analysis, nil
}

// complete fills analysis with a result and stores it
func (uc *AnalysisUseCase) complete(ctx context.Context, analysis *model.Analysis, dossier *model.Dossier) error {
	result, source, err := uc.analyze(ctx, dossier)
	if err != nil {
		return err
	}

	analysis.Complete(result, source, time.Now().UTC())
	if err := uc.repo.Analysis().Put(ctx, analysis); err != nil {
		return goerr.Wrap(err, "failed to save analysis", goerr.V(AnalysisIDKey, analysis.ID))
	}
	uc.metrics.IncrementAnalysis(source.String())

	logging.From(ctx).Info("analysis completed",
		"analysis_id", analysis.ID,
		"dossier_id", dossier.ID,
		"source", source,
		"risk_score", analysis.RiskScore,
		"risk_level", analysis.RiskLevel,
	)
	return nil
}

// analyze asks the LLM once and falls back to the bundled baseline analysis on any failure
func (uc *AnalysisUseCase) analyze(ctx context.Context, dossier *model.Dossier) (*model.AnalysisResult, types.AnalysisSource, error) {
	if uc.analyst != nil {
		result, err := uc.analyst.Analyze(ctx, dossier)
		if err == nil {
			return result, types.AnalysisSourceLLM, nil
		}
		errutil.Warn(ctx, err, "LLM analysis failed, using baseline analysis")
	} else {
		logging.From(ctx).Debug("no LLM configured, using baseline analysis", "dossier_id", dossier.ID)
	}

	uc.metrics.IncrementFallback(analyst.OperationAnalysis.String())

	baseline, err := uc.repo.Dossier().Baseline(ctx, dossier.ID)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to get baseline analysis", goerr.V(DossierIDKey, dossier.ID))
	}
	return baseline, types.AnalysisSourceFallback, nil
}
