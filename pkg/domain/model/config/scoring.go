package config

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// ScoringModel holds the constants of the deterministic mitigation model.
// The defaults are demo values; every field can be overridden from configuration.
type ScoringModel struct {
	// BaselineOwnershipPercent is the foreign ownership before any mitigation
	BaselineOwnershipPercent float64 `json:"baselineOwnershipPercent"`

	// BaselineBoardSeats is the number of foreign board seats before any mitigation
	BaselineBoardSeats int `json:"baselineBoardSeats"`

	OwnershipWeight float64 `json:"ownershipWeight"`
	BoardWeight     float64 `json:"boardWeight"`
	FinancingWeight float64 `json:"financingWeight"`
	PersonnelWeight float64 `json:"personnelWeight"`

	// ScoreFloor is the lowest score the model can produce
	ScoreFloor float64 `json:"scoreFloor"`

	// HighThreshold and ModerateThreshold are inclusive lower bounds of the HIGH and MODERATE levels
	HighThreshold     float64 `json:"highThreshold"`
	ModerateThreshold float64 `json:"moderateThreshold"`

	// CompliantOwnershipPercent marks ownership levels that avoid enhanced security review
	CompliantOwnershipPercent float64 `json:"compliantOwnershipPercent"`

	// OwnershipPresets are the ownership targets offered to the user
	OwnershipPresets []float64 `json:"ownershipPresets"`
}

// DefaultScoringModel returns the model with its demo constants
func DefaultScoringModel() *ScoringModel {
	return &ScoringModel{
		BaselineOwnershipPercent:  60,
		BaselineBoardSeats:        3,
		OwnershipWeight:           40,
		BoardWeight:               25,
		FinancingWeight:           15,
		PersonnelWeight:           10,
		ScoreFloor:                15,
		HighThreshold:             70,
		ModerateThreshold:         40,
		CompliantOwnershipPercent: 25,
		OwnershipPresets:          []float64{45, 30, 20, 10},
	}
}

// MaxReduction is the total weight budget, the largest reduction the model can apply
func (m *ScoringModel) MaxReduction() float64 {
	return m.OwnershipWeight + m.BoardWeight + m.FinancingWeight + m.PersonnelWeight
}

// LevelOf maps a score to its level using the configured thresholds.
// The deterministic model never yields CRITICAL.
func (m *ScoringModel) LevelOf(score float64) types.RiskLevel {
	switch {
	case score >= m.HighThreshold:
		return types.RiskLevelHigh
	case score >= m.ModerateThreshold:
		return types.RiskLevelModerate
	default:
		return types.RiskLevelLow
	}
}

// Validate checks if the ScoringModel is usable
func (m *ScoringModel) Validate() error {
	if m.BaselineOwnershipPercent <= 0 || m.BaselineOwnershipPercent > 100 {
		return goerr.New("baseline ownership percent must be in (0, 100]", goerr.V("value", m.BaselineOwnershipPercent))
	}
	if m.BaselineBoardSeats <= 0 {
		return goerr.New("baseline board seats must be positive", goerr.V("value", m.BaselineBoardSeats))
	}

	weights := map[string]float64{
		"ownership": m.OwnershipWeight,
		"board":     m.BoardWeight,
		"financing": m.FinancingWeight,
		"personnel": m.PersonnelWeight,
	}
	for name, w := range weights {
		if w < 0 {
			return goerr.New("weight must not be negative", goerr.V("weight", name), goerr.V("value", w))
		}
	}

	if m.ScoreFloor < 0 || m.ScoreFloor > 100 {
		return goerr.New("score floor must be in [0, 100]", goerr.V("value", m.ScoreFloor))
	}
	if m.ModerateThreshold >= m.HighThreshold {
		return goerr.New("moderate threshold must be lower than high threshold",
			goerr.V("moderate", m.ModerateThreshold),
			goerr.V("high", m.HighThreshold),
		)
	}

	for _, p := range m.OwnershipPresets {
		if p < 0 || p > 100 {
			return goerr.New("ownership preset must be in [0, 100]", goerr.V("value", p))
		}
	}

	return nil
}

// Clone returns a deep copy of the model
func (m *ScoringModel) Clone() *ScoringModel {
	c := *m
	c.OwnershipPresets = slices.Clone(m.OwnershipPresets)
	return &c
}
