package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/patrickmn/go-cache"
	"github.com/secmon-lab/cipher/pkg/domain/interfaces"
	"github.com/secmon-lab/cipher/pkg/domain/model"
)

// analysisRepository keeps analyses in an expiring cache. Entries are dropped after the TTL.
type analysisRepository struct {
	store *cache.Cache
}

func newAnalysisRepository(ttl time.Duration) *analysisRepository {
	return &analysisRepository{
		store: cache.New(ttl, ttl*2),
	}
}

func (r *analysisRepository) Put(ctx context.Context, analysis *model.Analysis) error {
	if analysis == nil {
		return goerr.New("analysis is nil")
	}
	if analysis.ID == "" {
		return goerr.New("analysis ID is empty", goerr.V("dossier_id", analysis.DossierID))
	}

	r.store.Set(analysis.ID.String(), analysis.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, id model.AnalysisID) (*model.Analysis, error) {
	v, ok := r.store.Get(id.String())
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "analysis not found", goerr.V("analysis_id", id))
	}

	analysis, ok := v.(*model.Analysis)
	if !ok {
		return nil, goerr.New("unexpected value in analysis store", goerr.V("analysis_id", id))
	}
	return analysis.Clone(), nil
}
