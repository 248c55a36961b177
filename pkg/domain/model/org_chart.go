package model

import (
	"slices"

	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// OrgNode is an entity in a corporate structure
type OrgNode struct {
	ID          types.NodeID   `json:"id"`
	Name        string         `json:"name"`
	Kind        types.NodeKind `json:"kind"`
	Risk        types.NodeRisk `json:"risk"`
	Ownership   string         `json:"ownership,omitempty"`
	Country     string         `json:"country,omitempty"`
	Nationality string         `json:"nationality,omitempty"`
	AppointedBy string         `json:"appointedBy,omitempty"`
	Details     string         `json:"details"`
}

// OrgChart is the corporate structure of a dossier
type OrgChart struct {
	Company      OrgNode   `json:"company"`
	Shareholders []OrgNode `json:"shareholders"`
	Board        []OrgNode `json:"board"`
	Executives   []OrgNode `json:"executives"`
}

// Nodes returns every node of the chart, company first
func (x *OrgChart) Nodes() []OrgNode {
	nodes := []OrgNode{x.Company}
	nodes = append(nodes, x.Shareholders...)
	nodes = append(nodes, x.Board...)
	nodes = append(nodes, x.Executives...)
	return nodes
}

// Node looks up a node by ID
func (x *OrgChart) Node(id types.NodeID) (OrgNode, bool) {
	for _, n := range x.Nodes() {
		if n.ID == id {
			return n, true
		}
	}
	return OrgNode{}, false
}

// Clone returns a deep copy of the chart
func (x *OrgChart) Clone() *OrgChart {
	c := *x
	c.Shareholders = slices.Clone(x.Shareholders)
	c.Board = slices.Clone(x.Board)
	c.Executives = slices.Clone(x.Executives)
	return &c
}

// NodeDetail is the analyst's breakdown of a single entity
type NodeDetail struct {
	NodeID      types.NodeID      `json:"nodeId"`
	Name        string            `json:"name"`
	Risk        types.NodeRisk    `json:"risk"`
	ConcernArea types.ConcernArea `json:"concernArea"`
	Findings    []string          `json:"findings"`
	Evidence    string            `json:"evidence"`
	Explanation string            `json:"explanation"`
}

// Clone returns a deep copy of the detail
func (x *NodeDetail) Clone() *NodeDetail {
	c := *x
	c.Findings = slices.Clone(x.Findings)
	return &c
}
