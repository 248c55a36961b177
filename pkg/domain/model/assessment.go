package model

import (
	"math"

	"github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// ImpactBreakdown is the score reduction attributed to each lever
type ImpactBreakdown struct {
	Ownership int `json:"ownership"`
	Board     int `json:"board"`
	Financing int `json:"financing"`
	Personnel int `json:"personnel"`
}

// Progress is the share of the available reduction achieved, in percent
type Progress struct {
	Total     float64 `json:"total"`
	Ownership float64 `json:"ownership"`
	Board     float64 `json:"board"`
	Financing float64 `json:"financing"`
	Personnel float64 `json:"personnel"`
}

// RiskAssessment is the deterministic projection of a score under mitigation settings
type RiskAssessment struct {
	RiskScore       int             `json:"riskScore"`
	RiskLevel       types.RiskLevel `json:"riskLevel"`
	RiskReduction   int             `json:"riskReduction"`
	ImpactBreakdown ImpactBreakdown `json:"impactBreakdown"`
	MaxReduction    int             `json:"maxReduction"`
	Progress        Progress        `json:"progress"`
	Status          StatusSummary   `json:"status"`
}

// ProjectRisk applies the mitigation levers to initialScore.
// Settings are expected to be validated by the caller.
func ProjectRisk(m *config.ScoringModel, initialScore int, s MitigationSettings) *RiskAssessment {
	ownership := math.Max(0, m.BaselineOwnershipPercent-s.ForeignOwnershipPercent) /
		m.BaselineOwnershipPercent * m.OwnershipWeight
	board := math.Max(0, float64(m.BaselineBoardSeats-s.ForeignBoardSeats)) /
		float64(m.BaselineBoardSeats) * m.BoardWeight

	var financing, personnel float64
	if s.EliminateForeignFinancing {
		financing = m.FinancingWeight
	}
	if s.AddressPersonnelTies {
		personnel = m.PersonnelWeight
	}

	total := ownership + board + financing + personnel
	score := math.Max(m.ScoreFloor, float64(initialScore)-total)
	level := m.LevelOf(score)

	breakdown := ImpactBreakdown{
		Ownership: round(ownership),
		Board:     round(board),
		Financing: round(financing),
		Personnel: round(personnel),
	}
	reduction := round(total)

	return &RiskAssessment{
		RiskScore:       round(score),
		RiskLevel:       level,
		RiskReduction:   reduction,
		ImpactBreakdown: breakdown,
		MaxReduction:    round(m.MaxReduction()),
		Progress: Progress{
			Total:     percent(float64(reduction), m.MaxReduction()),
			Ownership: percent(float64(breakdown.Ownership), m.OwnershipWeight),
			Board:     percent(float64(breakdown.Board), m.BoardWeight),
			Financing: percent(float64(breakdown.Financing), m.FinancingWeight),
			Personnel: percent(float64(breakdown.Personnel), m.PersonnelWeight),
		},
		Status: StatusSummaryOf(level),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

func percent(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return v / limit * 100
}

// StatusSummary describes what a projected level means for the entity
type StatusSummary struct {
	Level     types.RiskLevel `json:"level"`
	Message   string          `json:"message"`
	NextSteps string          `json:"nextSteps"`
}

// StatusSummaryOf returns the status text for a level
func StatusSummaryOf(level types.RiskLevel) StatusSummary {
	switch level {
	case types.RiskLevelLow:
		return StatusSummary{
			Level:     level,
			Message:   "Company would meet security compliance standards",
			NextSteps: "Company can proceed with standard security protocols",
		}
	case types.RiskLevelModerate:
		return StatusSummary{
			Level:     level,
			Message:   "Additional review required, but manageable risk level",
			NextSteps: "Implement monitoring agreements and periodic reviews",
		}
	default:
		return StatusSummary{
			Level:     level,
			Message:   "Still requires significant additional mitigation measures",
			NextSteps: "Continue reducing foreign influence before approval",
		}
	}
}
