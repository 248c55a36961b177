package memory

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

// dossierRepository serves the fixture catalog. It is immutable after construction.
type dossierRepository struct {
	order   []types.DossierID
	entries map[types.DossierID]*catalogEntry
}

func newDossierRepository(entries []*catalogEntry) *dossierRepository {
	r := &dossierRepository{
		order:   make([]types.DossierID, 0, len(entries)),
		entries: make(map[types.DossierID]*catalogEntry, len(entries)),
	}
	for _, e := range entries {
		r.order = append(r.order, e.dossier.ID)
		r.entries[e.dossier.ID] = e
	}
	return r
}

func (r *dossierRepository) lookup(id types.DossierID) (*catalogEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "dossier not found", goerr.V("dossier_id", id))
	}
	return entry, nil
}

func (r *dossierRepository) List(ctx context.Context) ([]*model.Dossier, error) {
	dossiers := make([]*model.Dossier, 0, len(r.order))
	for _, id := range r.order {
		dossiers = append(dossiers, r.entries[id].dossier.Clone())
	}
	return dossiers, nil
}

func (r *dossierRepository) Get(ctx context.Context, id types.DossierID) (*model.Dossier, error) {
	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return entry.dossier.Clone(), nil
}

func (r *dossierRepository) OrgChart(ctx context.Context, id types.DossierID) (*model.OrgChart, error) {
	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return entry.orgChart.Clone(), nil
}

func (r *dossierRepository) NodeDetail(ctx context.Context, id types.DossierID, nodeID types.NodeID) (*model.NodeDetail, error) {
	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	detail, ok := entry.details[nodeID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "node detail not found",
			goerr.V("dossier_id", id),
			goerr.V("node_id", nodeID),
		)
	}
	return detail.Clone(), nil
}

func (r *dossierRepository) Baseline(ctx context.Context, id types.DossierID) (*model.AnalysisResult, error) {
	entry, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return entry.baseline.Clone(), nil
}
