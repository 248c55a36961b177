package types

// NodeRisk is the coarse risk marker shown on an org chart entity
type NodeRisk string

const (
	NodeRiskLow    NodeRisk = "LOW"
	NodeRiskMedium NodeRisk = "MEDIUM"
	NodeRiskHigh   NodeRisk = "HIGH"
)

// IsValid checks if the node risk is valid
func (r NodeRisk) IsValid() bool {
	switch r {
	case NodeRiskLow, NodeRiskMedium, NodeRiskHigh:
		return true
	default:
		return false
	}
}

func (r NodeRisk) String() string {
	return string(r)
}

// NodeKind is the role an entity plays in a corporate structure
type NodeKind string

const (
	NodeKindCompany     NodeKind = "company"
	NodeKindShareholder NodeKind = "shareholder"
	NodeKindBoard       NodeKind = "board"
	NodeKindExecutive   NodeKind = "executive"
)

// IsValid checks if the node kind is valid
func (k NodeKind) IsValid() bool {
	switch k {
	case NodeKindCompany, NodeKindShareholder, NodeKindBoard, NodeKindExecutive:
		return true
	default:
		return false
	}
}

func (k NodeKind) String() string {
	return string(k)
}
