package types

import "fmt"

// RiskLevel is the categorical FOCI risk label attached to a score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// AllRiskLevels returns all valid risk levels ordered from least to most severe
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelModerate,
		RiskLevelHigh,
		RiskLevelCritical,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow,
		RiskLevelModerate,
		RiskLevelHigh,
		RiskLevelCritical:
		return true
	default:
		return false
	}
}

// RequiresMitigation reports whether an entity at this level is eligible for the mitigation lab
func (l RiskLevel) RequiresMitigation() bool {
	return l == RiskLevelHigh || l == RiskLevelCritical
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}
