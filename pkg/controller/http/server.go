package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/cipher/pkg/usecase"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	gatherer prometheus.Gatherer
}

type Options func(*Server)

// WithMetrics exposes the metrics of gatherer on /metrics
func WithMetrics(gatherer prometheus.Gatherer) Options {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler(uc))
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/dossiers", func(r chi.Router) {
			r.Get("/", listDossiersHandler(uc))
			r.Route("/{dossierID}", func(r chi.Router) {
				r.Get("/", getDossierHandler(uc))
				r.Get("/org-chart", orgChartHandler(uc))
				r.Get("/nodes/{nodeID}", nodeDetailHandler(uc))
				r.Post("/analyses", startAnalysisHandler(uc))
				r.Post("/mitigation", simulateMitigationHandler(uc))
				r.Post("/mitigation/assess", assessMitigationHandler(uc))
			})
		})
		r.Get("/analyses/{analysisID}", getAnalysisHandler(uc))
		r.Get("/scoring-model", scoringModelHandler(uc))
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
