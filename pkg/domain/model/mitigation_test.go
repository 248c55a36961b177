package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

func TestMitigationSettings_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		settings model.MitigationSettings
		wantErr  bool
	}{
		{name: "baseline", settings: model.MitigationSettings{ForeignOwnershipPercent: 60, ForeignBoardSeats: 3}},
		{name: "fully mitigated", settings: model.MitigationSettings{ForeignOwnershipPercent: 0, ForeignBoardSeats: 0, EliminateForeignFinancing: true, AddressPersonnelTies: true}},
		{name: "ownership 100", settings: model.MitigationSettings{ForeignOwnershipPercent: 100}},
		{name: "negative ownership", settings: model.MitigationSettings{ForeignOwnershipPercent: -1}, wantErr: true},
		{name: "ownership above 100", settings: model.MitigationSettings{ForeignOwnershipPercent: 100.5}, wantErr: true},
		{name: "negative seats", settings: model.MitigationSettings{ForeignBoardSeats: -1}, wantErr: true},
		{name: "seats above baseline", settings: model.MitigationSettings{ForeignBoardSeats: 4}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.settings.Validate(3)
			if tc.wantErr {
				gt.Error(t, err).Is(model.ErrInvalidMitigationSettings)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestMitigationSettings_Changes(t *testing.T) {
	s := model.MitigationSettings{
		ForeignOwnershipPercent:   20,
		ForeignBoardSeats:         1,
		EliminateForeignFinancing: true,
	}

	changes := s.Changes()
	gt.Array(t, changes).Length(4)
	gt.Value(t, changes[0]).Equal(model.Change{Key: "foreignOwnershipPercent", Value: "20"})
	gt.Value(t, changes[1]).Equal(model.Change{Key: "foreignBoardSeats", Value: "1"})
	gt.Value(t, changes[2]).Equal(model.Change{Key: "eliminateForeignFinancing", Value: "true"})
	gt.Value(t, changes[3]).Equal(model.Change{Key: "addressPersonnelTies", Value: "false"})
}

func TestBaselineSettings(t *testing.T) {
	m := config.DefaultScoringModel()
	s := model.BaselineSettings(m)
	gt.NoError(t, s.Validate(m.BaselineBoardSeats))

	got := model.ProjectRisk(m, 85, s)
	gt.Value(t, got.RiskScore).Equal(85)
	gt.Value(t, got.RiskReduction).Equal(0)
}

func TestOwnershipPresets(t *testing.T) {
	presets := model.OwnershipPresets(config.DefaultScoringModel())
	gt.Array(t, presets).Length(4)
	gt.Value(t, presets[0]).Equal(model.OwnershipPreset{Percent: 45, Compliant: false})
	gt.Value(t, presets[1]).Equal(model.OwnershipPreset{Percent: 30, Compliant: false})
	gt.Value(t, presets[2]).Equal(model.OwnershipPreset{Percent: 20, Compliant: true})
	gt.Value(t, presets[3]).Equal(model.OwnershipPreset{Percent: 10, Compliant: true})
}

func TestImpactFromAssessment(t *testing.T) {
	m := config.DefaultScoringModel()
	risks := []model.Risk{
		{Type: types.ConcernForeignOwnership, Description: "Eastern Star Holdings controls 60% voting shares"},
		{Type: types.ConcernForeignInfluence, Description: "Country X affiliated loan"},
		{Type: "Supply Chain", Description: "unmapped finding"},
	}

	a := model.ProjectRisk(m, 85, model.MitigationSettings{ForeignOwnershipPercent: 10, ForeignBoardSeats: 3})
	impact := model.ImpactFromAssessment(a, risks)

	gt.Value(t, impact.NewRiskScore).Equal(a.RiskScore)
	gt.Value(t, impact.NewRiskLevel).Equal(a.RiskLevel)
	gt.Value(t, impact.Source).Equal(types.AnalysisSourceFallback)
	gt.String(t, impact.ImpactSummary).Equal(a.Status.Message)
	gt.Array(t, impact.RemainingConcerns).Length(2)
	gt.Value(t, impact.RemainingConcerns[0]).Equal("Country X affiliated loan")
	gt.Value(t, impact.RemainingConcerns[1]).Equal("unmapped finding")
}
