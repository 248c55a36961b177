package interfaces

import (
	"context"

	"github.com/secmon-lab/cipher/pkg/domain/model"
)

// AnalysisRepository keeps analysis runs for a limited time
type AnalysisRepository interface {
	// Put creates or replaces an analysis
	Put(ctx context.Context, analysis *model.Analysis) error

	// Get retrieves an analysis by ID
	Get(ctx context.Context, id model.AnalysisID) (*model.Analysis, error)
}
