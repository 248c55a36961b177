package model

import (
	"slices"

	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// MitigationImpact is the assessed effect of proposed changes on an analysis
type MitigationImpact struct {
	NewRiskScore      int                  `json:"newRiskScore"`
	NewRiskLevel      types.RiskLevel      `json:"newRiskLevel"`
	ImpactSummary     string               `json:"impactSummary"`
	RemainingConcerns []string             `json:"remainingConcerns"`
	Source            types.AnalysisSource `json:"source"`
}

// ImpactFromAssessment converts a deterministic projection into a MitigationImpact.
// Remaining concerns are the original findings whose lever was left untouched.
func ImpactFromAssessment(a *RiskAssessment, original []Risk) *MitigationImpact {
	remaining := []string{}
	for _, r := range original {
		if !leverAddressed(r.Type, a.ImpactBreakdown) {
			remaining = append(remaining, r.Description)
		}
	}

	return &MitigationImpact{
		NewRiskScore:      a.RiskScore,
		NewRiskLevel:      a.RiskLevel,
		ImpactSummary:     a.Status.Message,
		RemainingConcerns: remaining,
		Source:            types.AnalysisSourceFallback,
	}
}

func leverAddressed(area types.ConcernArea, b ImpactBreakdown) bool {
	switch area {
	case types.ConcernForeignOwnership:
		return b.Ownership > 0
	case types.ConcernForeignControl:
		return b.Board > 0
	case types.ConcernForeignInfluence:
		return b.Financing > 0
	case types.ConcernPersonnelTies:
		return b.Personnel > 0
	default:
		return false
	}
}

// Clone returns a deep copy of the impact
func (x *MitigationImpact) Clone() *MitigationImpact {
	c := *x
	c.RemainingConcerns = slices.Clone(x.RemainingConcerns)
	return &c
}
