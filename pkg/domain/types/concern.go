package types

// ConcernArea is one of the conceptual FOCI concern areas a finding is filed under.
// Values coming from an LLM are kept verbatim even when they are not one of the known areas.
type ConcernArea string

const (
	ConcernForeignOwnership ConcernArea = "Foreign Ownership"
	ConcernForeignControl   ConcernArea = "Foreign Control (Board/Management)"
	ConcernForeignInfluence ConcernArea = "Foreign Influence (Financial/Contractual)"
	ConcernPersonnelTies    ConcernArea = "Key Personnel Foreign Ties"
)

// AllConcernAreas returns the known FOCI concern areas
func AllConcernAreas() []ConcernArea {
	return []ConcernArea{
		ConcernForeignOwnership,
		ConcernForeignControl,
		ConcernForeignInfluence,
		ConcernPersonnelTies,
	}
}

// IsKnown reports whether the area is one of AllConcernAreas
func (c ConcernArea) IsKnown() bool {
	for _, known := range AllConcernAreas() {
		if c == known {
			return true
		}
	}
	return false
}

func (c ConcernArea) String() string {
	return string(c)
}
