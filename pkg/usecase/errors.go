package usecase

import (
	"errors"

	"github.com/secmon-lab/cipher/pkg/domain/model"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrDossierNotFound  = errors.New("dossier not found")
	ErrNodeNotFound     = errors.New("node detail not found")
	ErrAnalysisNotFound = errors.New("analysis not found")

	// State errors
	ErrAnalysisInProgress    = errors.New("analysis is still in progress")
	ErrAnalysisMismatch      = errors.New("analysis belongs to another dossier")
	ErrMitigationUnavailable = errors.New("mitigation lab is available for high-risk entities only")

	// Input errors
	ErrInvalidSettings = model.ErrInvalidMitigationSettings
)

// Context keys for error values
const (
	DossierIDKey  = "dossier_id"
	NodeIDKey     = "node_id"
	AnalysisIDKey = "analysis_id"
	RiskLevelKey  = "risk_level"
)
