package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
)

type DossierUseCase struct {
	repo interfaces.Repository
}

func NewDossierUseCase(repo interfaces.Repository) *DossierUseCase {
	return &DossierUseCase{
		repo: repo,
	}
}

// List returns the summaries of all dossiers
func (uc *DossierUseCase) List(ctx context.Context) ([]model.DossierSummary, error) {
	dossiers, err := uc.repo.Dossier().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list dossiers")
	}

	summaries := make([]model.DossierSummary, 0, len(dossiers))
	for _, d := range dossiers {
		summaries = append(summaries, d.Summary())
	}
	return summaries, nil
}

func (uc *DossierUseCase) Get(ctx context.Context, id types.DossierID) (*model.Dossier, error) {
	dossier, err := uc.repo.Dossier().Get(ctx, id)
	if err != nil {
		return nil, wrapDossierErr(err, id)
	}
	return dossier, nil
}

func (uc *DossierUseCase) OrgChart(ctx context.Context, id types.DossierID) (*model.OrgChart, error) {
	chart, err := uc.repo.Dossier().OrgChart(ctx, id)
	if err != nil {
		return nil, wrapDossierErr(err, id)
	}
	return chart, nil
}

// NodeDetail returns the risk breakdown of an org chart entity
func (uc *DossierUseCase) NodeDetail(ctx context.Context, id types.DossierID, nodeID types.NodeID) (*model.NodeDetail, error) {
	if _, err := uc.repo.Dossier().Get(ctx, id); err != nil {
		return nil, wrapDossierErr(err, id)
	}

	detail, err := uc.repo.Dossier().NodeDetail(ctx, id, nodeID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNodeNotFound, "no detail for node",
				goerr.V(DossierIDKey, id),
				goerr.V(NodeIDKey, nodeID),
			)
		}
		return nil, goerr.Wrap(err, "failed to get node detail",
			goerr.V(DossierIDKey, id),
			goerr.V(NodeIDKey, nodeID),
		)
	}
	return detail, nil
}

func wrapDossierErr(err error, id types.DossierID) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrDossierNotFound, "failed to look up dossier", goerr.V(DossierIDKey, id))
	}
	return goerr.Wrap(err, "failed to get dossier", goerr.V(DossierIDKey, id))
}
