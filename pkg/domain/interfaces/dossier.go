package interfaces

import (
	"context"

	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// DossierRepository provides read-only access to the fixture dossiers
type DossierRepository interface {
	// List retrieves all dossiers in catalog order
	List(ctx context.Context) ([]*model.Dossier, error)

	// Get retrieves a dossier by ID
	Get(ctx context.Context, id types.DossierID) (*model.Dossier, error)

	// OrgChart retrieves the corporate structure of a dossier
	OrgChart(ctx context.Context, id types.DossierID) (*model.OrgChart, error)

	// NodeDetail retrieves the analyst breakdown of an org chart entity
	NodeDetail(ctx context.Context, id types.DossierID, nodeID types.NodeID) (*model.NodeDetail, error)

	// Baseline retrieves the bundled analysis used when the LLM is unavailable
	Baseline(ctx context.Context, id types.DossierID) (*model.AnalysisResult, error)
}
