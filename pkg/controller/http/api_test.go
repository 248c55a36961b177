package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	httpctrl "github.com/secmon-lab/cipher/pkg/controller/http"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/repository/memory"
	"github.com/secmon-lab/cipher/pkg/service/analyst"
	"github.com/secmon-lab/cipher/pkg/usecase"
)

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

func newServer(t *testing.T, opts ...usecase.Option) *httpctrl.Server {
	t.Helper()
	repo, err := memory.New()
	gt.NoError(t, err).Required()

	srv, err := httpctrl.New(usecase.New(repo, opts...))
	gt.NoError(t, err).Required()
	return srv
}

func doRequest(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestNew(t *testing.T) {
	_, err := httpctrl.New(nil)
	gt.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	w := doRequest(t, srv, http.MethodGet, "/health", "")
	gt.Value(t, w.Code).Equal(http.StatusOK)

	resp := decode[map[string]any](t, w)
	gt.Value(t, resp["status"]).Equal(any("ok"))
	gt.Value(t, resp["llm"]).Equal(any(false))
}

func TestDossierEndpoints(t *testing.T) {
	srv := newServer(t)

	t.Run("list", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/dossiers", "")
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.String(t, w.Header().Get("Content-Type")).Equal("application/json")

		resp := decode[struct {
			Dossiers []model.DossierSummary `json:"dossiers"`
		}](t, w)
		gt.Array(t, resp.Dossiers).Length(2).Required()
		gt.Value(t, resp.Dossiers[0].ID).Equal(types.DossierID("red-october"))
	})

	t.Run("get", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/dossiers/red-october", "")
		gt.Value(t, w.Code).Equal(http.StatusOK)

		dossier := decode[model.Dossier](t, w)
		gt.Array(t, dossier.DataPoints.Board).Length(5)
	})

	t.Run("unknown dossier", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/dossiers/black-sea", "")
		gt.Value(t, w.Code).Equal(http.StatusNotFound)

		resp := decode[map[string]string](t, w)
		gt.String(t, resp["error"]).Contains("dossier not found")
	})

	t.Run("org chart", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/dossiers/red-october/org-chart", "")
		gt.Value(t, w.Code).Equal(http.StatusOK)

		chart := decode[model.OrgChart](t, w)
		gt.Array(t, chart.Shareholders).Length(3)
		gt.Array(t, chart.Executives).Length(2)
	})

	t.Run("node detail", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/dossiers/red-october/nodes/eastern-star", "")
		gt.Value(t, w.Code).Equal(http.StatusOK)

		detail := decode[model.NodeDetail](t, w)
		gt.Value(t, detail.ConcernArea).Equal(types.ConcernForeignOwnership)

		w = doRequest(t, srv, http.MethodGet, "/api/dossiers/red-october/nodes/us-angels", "")
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestAnalysisEndpoints(t *testing.T) {
	svc := &mockAnalyst{
		analyzeFn: func(ctx context.Context, dossier *model.Dossier) (*model.AnalysisResult, error) {
			return nil, errors.New("LLM unavailable")
		},
	}
	srv := newServer(t, usecase.WithAnalyst(svc))

	w := doRequest(t, srv, http.MethodPost, "/api/dossiers/red-october/analyses", "")
	gt.Value(t, w.Code).Equal(http.StatusAccepted)

	started := decode[model.Analysis](t, w)
	gt.Value(t, started.Status).Equal(types.AnalysisStatusProcessing)
	gt.String(t, w.Header().Get("Location")).Equal("/api/analyses/" + started.ID.String())

	var done model.Analysis
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w = doRequest(t, srv, http.MethodGet, "/api/analyses/"+started.ID.String(), "")
		gt.Value(t, w.Code).Equal(http.StatusOK)
		done = decode[model.Analysis](t, w)
		if done.IsCompleted() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	gt.Value(t, done.Status).Equal(types.AnalysisStatusCompleted)
	gt.Value(t, done.Source).Equal(types.AnalysisSourceFallback)
	gt.Value(t, done.RiskScore).Equal(85)

	t.Run("mitigation against the analysis", func(t *testing.T) {
		body := `{"analysisId":"` + started.ID.String() + `","foreignOwnershipPercent":10,"foreignBoardSeats":0,"eliminateForeignFinancing":true,"addressPersonnelTies":true}`
		w := doRequest(t, srv, http.MethodPost, "/api/dossiers/red-october/mitigation", body)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		sim := decode[usecase.MitigationSimulation](t, w)
		gt.Value(t, sim.AnalysisID).Equal(started.ID)
		gt.Value(t, sim.Assessment.RiskScore).Equal(15)
	})

	t.Run("analysis of another dossier", func(t *testing.T) {
		body := `{"analysisId":"` + started.ID.String() + `"}`
		w := doRequest(t, srv, http.MethodPost, "/api/dossiers/liberty-defense/mitigation", body)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown analysis", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodGet, "/api/analyses/"+model.NewAnalysisID().String(), "")
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("unknown dossier", func(t *testing.T) {
		w := doRequest(t, srv, http.MethodPost, "/api/dossiers/black-sea/analyses", "")
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestMitigationEndpoints(t *testing.T) {
	srv := newServer(t)

	testCases := []struct {
		name   string
		path   string
		body   string
		status int
		score  int
	}{
		{
			name:   "omitted levers keep the baseline",
			path:   "/api/dossiers/red-october/mitigation",
			body:   `{}`,
			status: http.StatusOK,
			score:  85,
		},
		{
			name:   "full mitigation",
			path:   "/api/dossiers/red-october/mitigation",
			body:   `{"foreignOwnershipPercent":10,"foreignBoardSeats":0,"eliminateForeignFinancing":true,"addressPersonnelTies":true}`,
			status: http.StatusOK,
			score:  15,
		},
		{
			name:   "ownership out of range",
			path:   "/api/dossiers/red-october/mitigation",
			body:   `{"foreignOwnershipPercent":101}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "negative board seats",
			path:   "/api/dossiers/red-october/mitigation",
			body:   `{"foreignBoardSeats":-1}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			path:   "/api/dossiers/red-october/mitigation",
			body:   `{"ownership":10}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed body",
			path:   "/api/dossiers/red-october/mitigation",
			body:   `{`,
			status: http.StatusBadRequest,
		},
		{
			name:   "low risk entity",
			path:   "/api/dossiers/liberty-defense/mitigation",
			body:   `{}`,
			status: http.StatusConflict,
		},
		{
			name:   "unknown dossier",
			path:   "/api/dossiers/black-sea/mitigation",
			body:   `{}`,
			status: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, srv, http.MethodPost, tc.path, tc.body)
			gt.Value(t, w.Code).Equal(tc.status)
			if tc.status != http.StatusOK {
				return
			}

			sim := decode[usecase.MitigationSimulation](t, w)
			gt.Value(t, sim.OriginalScore).Equal(85)
			gt.Value(t, sim.Assessment.RiskScore).Equal(tc.score)
		})
	}

	t.Run("assess falls back to the projection", func(t *testing.T) {
		body := `{"foreignOwnershipPercent":30,"foreignBoardSeats":1}`
		w := doRequest(t, srv, http.MethodPost, "/api/dossiers/red-october/mitigation/assess", body)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		result := decode[struct {
			Assessment model.RiskAssessment   `json:"assessment"`
			Impact     model.MitigationImpact `json:"impact"`
		}](t, w)
		gt.Value(t, result.Impact.Source).Equal(types.AnalysisSourceFallback)
		gt.Value(t, result.Impact.NewRiskScore).Equal(result.Assessment.RiskScore)
	})
}

func TestScoringModelEndpoint(t *testing.T) {
	srv := newServer(t)
	w := doRequest(t, srv, http.MethodGet, "/api/scoring-model", "")
	gt.Value(t, w.Code).Equal(http.StatusOK)

	resp := decode[struct {
		MaxReduction float64                 `json:"maxReduction"`
		Presets      []model.OwnershipPreset `json:"presets"`
	}](t, w)
	gt.Value(t, resp.MaxReduction).Equal(90.0)
	gt.Array(t, resp.Presets).Length(4)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.IncrementFallback("analysis")

	repo, err := memory.New()
	gt.NoError(t, err).Required()
	srv, err := httpctrl.New(usecase.New(repo, usecase.WithMetrics(m)), httpctrl.WithMetrics(reg))
	gt.NoError(t, err).Required()

	w := doRequest(t, srv, http.MethodGet, "/metrics", "")
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Contains(`cipher_fallbacks_total{operation="analysis"} 1`)

	// not exposed without a gatherer
	w = doRequest(t, newServer(t), http.MethodGet, "/metrics", "")
	gt.Value(t, w.Code).Equal(http.StatusNotFound)
}
