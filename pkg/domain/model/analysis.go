package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// AnalysisID identifies an analysis run
type AnalysisID string

// NewAnalysisID generates a time-ordered analysis ID
func NewAnalysisID() AnalysisID {
	return AnalysisID(uuid.Must(uuid.NewV7()).String())
}

func (id AnalysisID) String() string {
	return string(id)
}

// Risk is a single FOCI finding
type Risk struct {
	Type        types.ConcernArea `json:"type"`
	Severity    string            `json:"severity"`
	Description string            `json:"description"`
	Evidence    string            `json:"evidence"`
}

// AnalysisResult is the scored outcome of analysing a dossier
type AnalysisResult struct {
	RiskScore int             `json:"riskScore"`
	RiskLevel types.RiskLevel `json:"riskLevel"`
	Risks     []Risk          `json:"risks"`
}

// Validate checks if the result is within the accepted ranges
func (r *AnalysisResult) Validate() error {
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return goerr.New("risk score out of range", goerr.V("score", r.RiskScore))
	}
	if !r.RiskLevel.IsValid() {
		return goerr.New("invalid risk level", goerr.V("level", r.RiskLevel))
	}
	return nil
}

// Clone returns a deep copy of the result
func (r *AnalysisResult) Clone() *AnalysisResult {
	c := *r
	c.Risks = slices.Clone(r.Risks)
	return &c
}

// Analysis is an analysis run of a dossier and, once completed, its result
type Analysis struct {
	ID          AnalysisID           `json:"id"`
	DossierID   types.DossierID      `json:"dossierId"`
	Status      types.AnalysisStatus `json:"status"`
	Source      types.AnalysisSource `json:"source,omitempty"`
	RiskScore   int                  `json:"riskScore"`
	RiskLevel   types.RiskLevel      `json:"riskLevel,omitempty"`
	Risks       []Risk               `json:"risks"`
	CreatedAt   time.Time            `json:"createdAt"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
}

// NewAnalysis creates an analysis in PROCESSING state
func NewAnalysis(dossierID types.DossierID, now time.Time) *Analysis {
	return &Analysis{
		ID:        NewAnalysisID(),
		DossierID: dossierID,
		Status:    types.AnalysisStatusProcessing,
		Risks:     []Risk{},
		CreatedAt: now,
	}
}

// Complete stores the result and marks the analysis COMPLETED
func (x *Analysis) Complete(result *AnalysisResult, source types.AnalysisSource, now time.Time) {
	x.Status = types.AnalysisStatusCompleted
	x.Source = source
	x.RiskScore = result.RiskScore
	x.RiskLevel = result.RiskLevel
	x.Risks = slices.Clone(result.Risks)
	if x.Risks == nil {
		x.Risks = []Risk{}
	}
	x.CompletedAt = &now
}

// IsCompleted reports whether the analysis has a result
func (x *Analysis) IsCompleted() bool {
	return x.Status == types.AnalysisStatusCompleted
}

// RiskDescriptions returns the description of each finding in order
func (x *Analysis) RiskDescriptions() []string {
	descs := make([]string, 0, len(x.Risks))
	for _, r := range x.Risks {
		descs = append(descs, r.Description)
	}
	return descs
}

// Clone returns a deep copy of the analysis
func (x *Analysis) Clone() *Analysis {
	c := *x
	c.Risks = slices.Clone(x.Risks)
	if x.CompletedAt != nil {
		t := *x.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
