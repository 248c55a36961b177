package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/service/analyst"
	"github.com/secmon-lab/cipher/pkg/utils/errutil"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
)

type MitigationUseCase struct {
	repo    interfaces.Repository
	analyst analyst.Service
	scoring *config.ScoringModel
	metrics *metrics.Metrics
}

func NewMitigationUseCase(repo interfaces.Repository, svc analyst.Service, scoring *config.ScoringModel, m *metrics.Metrics) *MitigationUseCase {
	return &MitigationUseCase{
		repo:    repo,
		analyst: svc,
		scoring: scoring,
		metrics: m,
	}
}

// MitigationRequest is a set of levers applied to an analysed dossier.
// When AnalysisID is empty the bundled baseline analysis of the dossier is used.
type MitigationRequest struct {
	AnalysisID model.AnalysisID
	Settings   model.MitigationSettings
}

// MitigationSimulation is the deterministic projection of a mitigation request
type MitigationSimulation struct {
	DossierID     types.DossierID          `json:"dossierId"`
	AnalysisID    model.AnalysisID         `json:"analysisId,omitempty"`
	OriginalScore int                      `json:"originalScore"`
	OriginalLevel types.RiskLevel          `json:"originalLevel"`
	Settings      model.MitigationSettings `json:"settings"`
	Assessment    *model.RiskAssessment    `json:"assessment"`

	originalRisks []model.Risk
}

// MitigationAssessment pairs the deterministic projection with the analyst's view of it
type MitigationAssessment struct {
	*MitigationSimulation
	Impact *model.MitigationImpact `json:"impact"`
}

// ScoringModel returns a copy of the active scoring model
func (uc *MitigationUseCase) ScoringModel() *config.ScoringModel {
	return uc.scoring.Clone()
}

// Presets returns the suggested ownership targets
func (uc *MitigationUseCase) Presets() []model.OwnershipPreset {
	return model.OwnershipPresets(uc.scoring)
}

// Simulate projects the risk score under the requested levers
func (uc *MitigationUseCase) Simulate(ctx context.Context, dossierID types.DossierID, req MitigationRequest) (*MitigationSimulation, error) {
	if err := req.Settings.Validate(uc.scoring.BaselineBoardSeats); err != nil {
		return nil, goerr.Wrap(err, "invalid mitigation request", goerr.V(DossierIDKey, dossierID))
	}

	original, err := uc.original(ctx, dossierID, req.AnalysisID)
	if err != nil {
		return nil, err
	}

	if !original.RiskLevel.RequiresMitigation() {
		return nil, goerr.Wrap(ErrMitigationUnavailable, "entity is not high risk",
			goerr.V(DossierIDKey, dossierID),
			goerr.V(RiskLevelKey, original.RiskLevel),
		)
	}

	assessment := model.ProjectRisk(uc.scoring, original.RiskScore, req.Settings)
	uc.metrics.ObserveProjectedScore(assessment.RiskScore)

	return &MitigationSimulation{
		DossierID:     dossierID,
		AnalysisID:    req.AnalysisID,
		OriginalScore: original.RiskScore,
		OriginalLevel: original.RiskLevel,
		Settings:      req.Settings,
		Assessment:    assessment,
		originalRisks: original.Risks,
	}, nil
}

// Assess asks the analyst for the impact of the levers and falls back to the
// deterministic projection when the analyst is unavailable or fails.
func (uc *MitigationUseCase) Assess(ctx context.Context, dossierID types.DossierID, req MitigationRequest) (*MitigationAssessment, error) {
	sim, err := uc.Simulate(ctx, dossierID, req)
	if err != nil {
		return nil, err
	}

	if uc.analyst != nil {
		impact, err := uc.analyst.AssessMitigation(ctx, analyst.MitigationInput{
			OriginalScore: sim.OriginalScore,
			OriginalRisks: sim.originalRisks,
			Settings:      sim.Settings,
		})
		if err == nil {
			return &MitigationAssessment{MitigationSimulation: sim, Impact: impact}, nil
		}
		errutil.Warn(ctx, err, "LLM mitigation assessment failed, using deterministic projection")
	} else {
		logging.From(ctx).Debug("no LLM configured, using deterministic projection", "dossier_id", dossierID)
	}

	uc.metrics.IncrementFallback(analyst.OperationMitigation.String())

	return &MitigationAssessment{
		MitigationSimulation: sim,
		Impact:               model.ImpactFromAssessment(sim.Assessment, sim.originalRisks),
	}, nil
}

// original resolves the analysis the levers are applied to
func (uc *MitigationUseCase) original(ctx context.Context, dossierID types.DossierID, analysisID model.AnalysisID) (*model.AnalysisResult, error) {
	if _, err := uc.repo.Dossier().Get(ctx, dossierID); err != nil {
		return nil, wrapDossierErr(err, dossierID)
	}

	if analysisID == "" {
		baseline, err := uc.repo.Dossier().Baseline(ctx, dossierID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get baseline analysis", goerr.V(DossierIDKey, dossierID))
		}
		return baseline, nil
	}

	analysis, err := getAnalysis(ctx, uc.repo, analysisID)
	if err != nil {
		return nil, err
	}
	if analysis.DossierID != dossierID {
		return nil, goerr.Wrap(ErrAnalysisMismatch, "analysis does not match dossier",
			goerr.V(DossierIDKey, dossierID),
			goerr.V(AnalysisIDKey, analysisID),
		)
	}
	if !analysis.IsCompleted() {
		return nil, goerr.Wrap(ErrAnalysisInProgress, "analysis has no result yet", goerr.V(AnalysisIDKey, analysisID))
	}

	return &model.AnalysisResult{
		RiskScore: analysis.RiskScore,
		RiskLevel: analysis.RiskLevel,
		Risks:     analysis.Risks,
	}, nil
}
