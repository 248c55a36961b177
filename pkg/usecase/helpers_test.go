package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/repository/memory"
	"github.com/secmon-lab/cipher/pkg/service/analyst"
	"github.com/secmon-lab/cipher/pkg/usecase"
)

// mockAnalyst is a mock analyst.Service for testing
type mockAnalyst struct {
	analyzeFn func(ctx context.Context, dossier *model.Dossier) (*model.AnalysisResult, error)
	assessFn  func(ctx context.Context, input analyst.MitigationInput) (*model.MitigationImpact, error)
}

func (m *mockAnalyst) Analyze(ctx context.Context, dossier *model.Dossier) (*model.AnalysisResult, error) {
	return m.analyzeFn(ctx, dossier)
}

func (m *mockAnalyst) AssessMitigation(ctx context.Context, input analyst.MitigationInput) (*model.MitigationImpact, error) {
	return m.assessFn(ctx, input)
}

func newRepo(t *testing.T) *memory.Memory {
	t.Helper()
	repo, err := memory.New()
	gt.NoError(t, err).Required()
	return repo
}

// waitCompleted polls until the analysis leaves PROCESSING
func waitCompleted(t *testing.T, uc *usecase.UseCases, id model.AnalysisID) *model.Analysis {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		a, err := uc.Analysis.Get(context.Background(), id)
		gt.NoError(t, err).Required()
		if a.IsCompleted() {
			return a
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("analysis %s did not complete", id)
	return nil
}
