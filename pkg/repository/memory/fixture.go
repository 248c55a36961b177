package memory

import (
	_ "embed"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

//go:embed fixture/dossiers.toml
var defaultFixture []byte

type fixtureFile struct {
	Dossiers []fixtureDossier `toml:"dossiers"`
}

type fixtureDossier struct {
	ID          string              `toml:"id"`
	Name        string              `toml:"name"`
	Description string              `toml:"description"`
	DataPoints  fixtureDataPoints   `toml:"data_points"`
	Baseline    *fixtureBaseline    `toml:"baseline"`
	OrgChart    fixtureOrgChart     `toml:"org_chart"`
	NodeDetails []fixtureNodeDetail `toml:"node_details"`
}

type fixtureDataPoints struct {
	Ownership []string `toml:"ownership"`
	Board     []string `toml:"board"`
	Personnel []string `toml:"personnel"`
	Financing []string `toml:"financing"`
	Contracts []string `toml:"contracts"`
}

type fixtureBaseline struct {
	RiskScore int           `toml:"risk_score"`
	RiskLevel string        `toml:"risk_level"`
	Risks     []fixtureRisk `toml:"risks"`
}

type fixtureRisk struct {
	Type        string `toml:"type"`
	Severity    string `toml:"severity"`
	Description string `toml:"description"`
	Evidence    string `toml:"evidence"`
}

type fixtureOrgChart struct {
	Company      fixtureNode   `toml:"company"`
	Shareholders []fixtureNode `toml:"shareholders"`
	Board        []fixtureNode `toml:"board"`
	Executives   []fixtureNode `toml:"executives"`
}

type fixtureNode struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Kind        string `toml:"kind"`
	Risk        string `toml:"risk"`
	Ownership   string `toml:"ownership"`
	Country     string `toml:"country"`
	Nationality string `toml:"nationality"`
	AppointedBy string `toml:"appointed_by"`
	Details     string `toml:"details"`
}

type fixtureNodeDetail struct {
	NodeID      string   `toml:"node_id"`
	Name        string   `toml:"name"`
	Risk        string   `toml:"risk"`
	ConcernArea string   `toml:"concern_area"`
	Findings    []string `toml:"findings"`
	Evidence    string   `toml:"evidence"`
	Explanation string   `toml:"explanation"`
}

// catalogEntry is a validated fixture dossier
type catalogEntry struct {
	dossier  *model.Dossier
	baseline *model.AnalysisResult
	orgChart *model.OrgChart
	details  map[types.NodeID]*model.NodeDetail
}

// parseFixture decodes and validates a fixture document. Catalog order follows the document.
func parseFixture(data []byte) ([]*catalogEntry, error) {
	var f fixtureFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse dossier fixture")
	}
	if len(f.Dossiers) == 0 {
		return nil, goerr.New("dossier fixture has no dossiers")
	}

	seen := make(map[types.DossierID]bool)
	entries := make([]*catalogEntry, 0, len(f.Dossiers))
	for _, d := range f.Dossiers {
		entry, err := d.toEntry()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid dossier in fixture", goerr.V("id", d.ID))
		}
		if seen[entry.dossier.ID] {
			return nil, goerr.New("duplicate dossier ID", goerr.V("id", d.ID))
		}
		seen[entry.dossier.ID] = true
		entries = append(entries, entry)
	}

	return entries, nil
}

func (d *fixtureDossier) toEntry() (*catalogEntry, error) {
	id := types.DossierID(d.ID)
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if d.Name == "" {
		return nil, goerr.New("dossier name is required")
	}

	if d.Baseline == nil {
		return nil, goerr.New("baseline analysis is required")
	}
	baseline := &model.AnalysisResult{
		RiskScore: d.Baseline.RiskScore,
		RiskLevel: types.RiskLevel(d.Baseline.RiskLevel),
		Risks:     make([]model.Risk, 0, len(d.Baseline.Risks)),
	}
	for _, r := range d.Baseline.Risks {
		baseline.Risks = append(baseline.Risks, model.Risk{
			Type:        types.ConcernArea(r.Type),
			Severity:    r.Severity,
			Description: r.Description,
			Evidence:    r.Evidence,
		})
	}
	if err := baseline.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid baseline analysis")
	}

	chart, err := d.OrgChart.toModel()
	if err != nil {
		return nil, err
	}

	details := make(map[types.NodeID]*model.NodeDetail, len(d.NodeDetails))
	for _, nd := range d.NodeDetails {
		nodeID := types.NodeID(nd.NodeID)
		if _, ok := chart.Node(nodeID); !ok {
			return nil, goerr.New("node detail refers to unknown node", goerr.V("node_id", nd.NodeID))
		}
		if _, dup := details[nodeID]; dup {
			return nil, goerr.New("duplicate node detail", goerr.V("node_id", nd.NodeID))
		}
		risk := types.NodeRisk(nd.Risk)
		if !risk.IsValid() {
			return nil, goerr.New("invalid node risk", goerr.V("node_id", nd.NodeID), goerr.V("risk", nd.Risk))
		}
		details[nodeID] = &model.NodeDetail{
			NodeID:      nodeID,
			Name:        nd.Name,
			Risk:        risk,
			ConcernArea: types.ConcernArea(nd.ConcernArea),
			Findings:    nd.Findings,
			Evidence:    nd.Evidence,
			Explanation: nd.Explanation,
		}
	}

	return &catalogEntry{
		dossier: &model.Dossier{
			ID:          id,
			Name:        d.Name,
			Description: d.Description,
			DataPoints: model.DataPoints{
				Ownership: d.DataPoints.Ownership,
				Board:     d.DataPoints.Board,
				Personnel: d.DataPoints.Personnel,
				Financing: d.DataPoints.Financing,
				Contracts: d.DataPoints.Contracts,
			},
		},
		baseline: baseline,
		orgChart: chart,
		details:  details,
	}, nil
}

func (c *fixtureOrgChart) toModel() (*model.OrgChart, error) {
	seen := make(map[types.NodeID]bool)
	convert := func(nodes []fixtureNode) ([]model.OrgNode, error) {
		out := make([]model.OrgNode, 0, len(nodes))
		for _, n := range nodes {
			node, err := n.toModel()
			if err != nil {
				return nil, err
			}
			if seen[node.ID] {
				return nil, goerr.New("duplicate org chart node", goerr.V("node_id", n.ID))
			}
			seen[node.ID] = true
			out = append(out, node)
		}
		return out, nil
	}

	company, err := convert([]fixtureNode{c.Company})
	if err != nil {
		return nil, goerr.Wrap(err, "invalid company node")
	}
	shareholders, err := convert(c.Shareholders)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid shareholder node")
	}
	board, err := convert(c.Board)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid board node")
	}
	executives, err := convert(c.Executives)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid executive node")
	}

	return &model.OrgChart{
		Company:      company[0],
		Shareholders: shareholders,
		Board:        board,
		Executives:   executives,
	}, nil
}

func (n *fixtureNode) toModel() (model.OrgNode, error) {
	id := types.NodeID(n.ID)
	if err := id.Validate(); err != nil {
		return model.OrgNode{}, err
	}
	kind := types.NodeKind(n.Kind)
	if !kind.IsValid() {
		return model.OrgNode{}, goerr.New("invalid node kind", goerr.V("node_id", n.ID), goerr.V("kind", n.Kind))
	}
	risk := types.NodeRisk(n.Risk)
	if !risk.IsValid() {
		return model.OrgNode{}, goerr.New("invalid node risk", goerr.V("node_id", n.ID), goerr.V("risk", n.Risk))
	}

	return model.OrgNode{
		ID:          id,
		Name:        n.Name,
		Kind:        kind,
		Risk:        risk,
		Ownership:   n.Ownership,
		Country:     n.Country,
		Nationality: n.Nationality,
		AppointedBy: n.AppointedBy,
		Details:     n.Details,
	}, nil
}
