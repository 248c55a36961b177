package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

func TestParseRiskLevel(t *testing.T) {
	for _, level := range types.AllRiskLevels() {
		parsed, err := types.ParseRiskLevel(level.String())
		gt.NoError(t, err)
		gt.Value(t, parsed).Equal(level)
	}

	_, err := types.ParseRiskLevel("MEDIUM")
	gt.Error(t, err)
	_, err = types.ParseRiskLevel("low")
	gt.Error(t, err)
}

func TestRiskLevel_RequiresMitigation(t *testing.T) {
	gt.Bool(t, types.RiskLevelCritical.RequiresMitigation()).True()
	gt.Bool(t, types.RiskLevelHigh.RequiresMitigation()).True()
	gt.Bool(t, types.RiskLevelModerate.RequiresMitigation()).False()
	gt.Bool(t, types.RiskLevelLow.RequiresMitigation()).False()
}

func TestDossierID_Validate(t *testing.T) {
	gt.NoError(t, types.DossierID("red-october").Validate())
	gt.NoError(t, types.DossierID("liberty-defense").Validate())
	gt.Error(t, types.DossierID("").Validate())
	gt.Error(t, types.DossierID("Red October").Validate())
	gt.Error(t, types.DossierID("-leading").Validate())
}

func TestConcernArea_IsKnown(t *testing.T) {
	gt.Bool(t, types.ConcernForeignControl.IsKnown()).True()
	gt.Bool(t, types.ConcernArea("Cyber").IsKnown()).False()
}
