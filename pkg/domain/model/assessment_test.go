package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

func TestProjectRisk(t *testing.T) {
	m := config.DefaultScoringModel()

	testCases := []struct {
		name          string
		initial       int
		settings      model.MitigationSettings
		wantScore     int
		wantLevel     types.RiskLevel
		wantReduction int
		wantBreakdown model.ImpactBreakdown
	}{
		{
			name:      "no mitigation keeps initial score",
			initial:   85,
			settings:  model.MitigationSettings{ForeignOwnershipPercent: 60, ForeignBoardSeats: 3},
			wantScore: 85,
			wantLevel: types.RiskLevelHigh,
		},
		{
			name:    "full mitigation hits the floor",
			initial: 85,
			settings: model.MitigationSettings{
				ForeignOwnershipPercent:   10,
				ForeignBoardSeats:         0,
				EliminateForeignFinancing: true,
				AddressPersonnelTies:      true,
			},
			wantScore:     15,
			wantLevel:     types.RiskLevelLow,
			wantReduction: 83,
			wantBreakdown: model.ImpactBreakdown{Ownership: 33, Board: 25, Financing: 15, Personnel: 10},
		},
		{
			name:          "ownership to 30 percent",
			initial:       85,
			settings:      model.MitigationSettings{ForeignOwnershipPercent: 30, ForeignBoardSeats: 3},
			wantScore:     65,
			wantLevel:     types.RiskLevelModerate,
			wantReduction: 20,
			wantBreakdown: model.ImpactBreakdown{Ownership: 20},
		},
		{
			name:          "financing only",
			initial:       85,
			settings:      model.MitigationSettings{ForeignOwnershipPercent: 60, ForeignBoardSeats: 3, EliminateForeignFinancing: true},
			wantScore:     70,
			wantLevel:     types.RiskLevelHigh,
			wantReduction: 15,
			wantBreakdown: model.ImpactBreakdown{Financing: 15},
		},
		{
			name:          "ownership above baseline is clamped",
			initial:       85,
			settings:      model.MitigationSettings{ForeignOwnershipPercent: 90, ForeignBoardSeats: 3},
			wantScore:     85,
			wantLevel:     types.RiskLevelHigh,
			wantReduction: 0,
		},
		{
			name:          "low initial score stays at floor",
			initial:       15,
			settings:      model.MitigationSettings{ForeignOwnershipPercent: 0, ForeignBoardSeats: 0},
			wantScore:     15,
			wantLevel:     types.RiskLevelLow,
			wantReduction: 65,
			wantBreakdown: model.ImpactBreakdown{Ownership: 40, Board: 25},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := model.ProjectRisk(m, tc.initial, tc.settings)
			gt.Value(t, got.RiskScore).Equal(tc.wantScore)
			gt.Value(t, got.RiskLevel).Equal(tc.wantLevel)
			gt.Value(t, got.RiskReduction).Equal(tc.wantReduction)
			gt.Value(t, got.ImpactBreakdown).Equal(tc.wantBreakdown)
			gt.Value(t, got.MaxReduction).Equal(90)
			gt.Value(t, got.Status.Level).Equal(tc.wantLevel)
		})
	}
}

func TestProjectRisk_OwnershipReductionIsMonotonic(t *testing.T) {
	m := config.DefaultScoringModel()

	prev := model.ProjectRisk(m, 100, model.MitigationSettings{ForeignOwnershipPercent: 0, ForeignBoardSeats: 3})
	gt.Value(t, prev.ImpactBreakdown.Ownership).Equal(40)

	for p := 1; p <= 60; p++ {
		got := model.ProjectRisk(m, 100, model.MitigationSettings{ForeignOwnershipPercent: float64(p), ForeignBoardSeats: 3})
		gt.Number(t, got.ImpactBreakdown.Ownership).LessOrEqual(prev.ImpactBreakdown.Ownership)
		prev = got
	}
	gt.Value(t, prev.ImpactBreakdown.Ownership).Equal(0)
}

func TestProjectRisk_NeverBelowFloor(t *testing.T) {
	m := config.DefaultScoringModel()

	for initial := 0; initial <= 100; initial += 5 {
		for _, p := range []float64{0, 10, 25, 45, 60, 100} {
			for seats := 0; seats <= 3; seats++ {
				for _, flag := range []bool{false, true} {
					got := model.ProjectRisk(m, initial, model.MitigationSettings{
						ForeignOwnershipPercent:   p,
						ForeignBoardSeats:         seats,
						EliminateForeignFinancing: flag,
						AddressPersonnelTies:      !flag,
					})
					gt.Number(t, got.RiskScore).GreaterOrEqual(15)
					gt.Number(t, got.RiskScore).LessOrEqual(100)
					gt.Value(t, got.RiskLevel).NotEqual(types.RiskLevelCritical)
				}
			}
		}
	}
}

func TestProjectRisk_LevelFromUnroundedScore(t *testing.T) {
	m := config.DefaultScoringModel()

	// 80 - 40*(60-45)/60 - 0 = 70 exactly, and 80 - 40*(60-44)/60 = 69.33
	got := model.ProjectRisk(m, 80, model.MitigationSettings{ForeignOwnershipPercent: 45, ForeignBoardSeats: 3})
	gt.Value(t, got.RiskScore).Equal(70)
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelHigh)

	got = model.ProjectRisk(m, 80, model.MitigationSettings{ForeignOwnershipPercent: 44, ForeignBoardSeats: 3})
	gt.Value(t, got.RiskScore).Equal(69)
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelModerate)

	// 80 - 40*(60-44.5)/60 = 69.67 rounds up to 70 but is still MODERATE
	got = model.ProjectRisk(m, 80, model.MitigationSettings{ForeignOwnershipPercent: 44.5, ForeignBoardSeats: 3})
	gt.Value(t, got.RiskScore).Equal(70)
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelModerate)
}

func TestProjectRisk_Progress(t *testing.T) {
	m := config.DefaultScoringModel()

	got := model.ProjectRisk(m, 85, model.MitigationSettings{
		ForeignOwnershipPercent: 0,
		ForeignBoardSeats:       0,
		AddressPersonnelTies:    true,
	})
	gt.Value(t, got.RiskReduction).Equal(75)
	gt.Value(t, got.Progress.Ownership).Equal(100.0)
	gt.Value(t, got.Progress.Board).Equal(100.0)
	gt.Value(t, got.Progress.Financing).Equal(0.0)
	gt.Value(t, got.Progress.Personnel).Equal(100.0)
	gt.Number(t, got.Progress.Total).Greater(83.0)
	gt.Number(t, got.Progress.Total).Less(84.0)
}

func TestProjectRisk_CustomModel(t *testing.T) {
	m := config.DefaultScoringModel()
	m.ScoreFloor = 0
	m.HighThreshold = 80
	m.ModerateThreshold = 50

	got := model.ProjectRisk(m, 85, model.MitigationSettings{
		ForeignOwnershipPercent:   0,
		ForeignBoardSeats:         0,
		EliminateForeignFinancing: true,
		AddressPersonnelTies:      true,
	})
	gt.Value(t, got.RiskScore).Equal(0)
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelLow)

	got = model.ProjectRisk(m, 85, model.MitigationSettings{ForeignOwnershipPercent: 60, ForeignBoardSeats: 2})
	gt.Value(t, got.RiskScore).Equal(77)
	gt.Value(t, got.RiskLevel).Equal(types.RiskLevelModerate)
}

func TestStatusSummaryOf(t *testing.T) {
	gt.String(t, model.StatusSummaryOf(types.RiskLevelLow).Message).Equal("Company would meet security compliance standards")
	gt.String(t, model.StatusSummaryOf(types.RiskLevelModerate).NextSteps).Equal("Implement monitoring agreements and periodic reviews")
	gt.String(t, model.StatusSummaryOf(types.RiskLevelHigh).Message).Equal("Still requires significant additional mitigation measures")
	gt.String(t, model.StatusSummaryOf(types.RiskLevelCritical).NextSteps).Equal("Continue reducing foreign influence before approval")
}
