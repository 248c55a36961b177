package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/domain/model"
	"github.com/secmon-lab/cipher/pkg/domain/model/config"
	"github.com/secmon-lab/cipher/pkg/domain/types"
	"github.com/secmon-lab/cipher/pkg/usecase"
	"github.com/secmon-lab/cipher/pkg/utils/errutil"
	"github.com/secmon-lab/cipher/pkg/utils/safe"
)

const maxRequestBody = 64 * 1024

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.WriteJSON(r.Context(), w, v)
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func dossierID(r *http.Request) types.DossierID {
	return types.DossierID(chi.URLParam(r, "dossierID"))
}

func healthHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Status string `json:"status"`
		LLM    bool   `json:"llm"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, response{Status: "ok", LLM: uc.LLMEnabled()})
	}
}

func listDossiersHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Dossiers []model.DossierSummary `json:"dossiers"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := uc.Dossier.List(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response{Dossiers: summaries})
	}
}

func getDossierHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dossier, err := uc.Dossier.Get(r.Context(), dossierID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, dossier)
	}
}

func orgChartHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chart, err := uc.Dossier.OrgChart(r.Context(), dossierID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, chart)
	}
}

func nodeDetailHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nodeID := types.NodeID(chi.URLParam(r, "nodeID"))
		detail, err := uc.Dossier.NodeDetail(r.Context(), dossierID(r), nodeID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, detail)
	}
}

func startAnalysisHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysis, err := uc.Analysis.Start(r.Context(), dossierID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		w.Header().Set("Location", "/api/analyses/"+analysis.ID.String())
		writeJSON(w, r, http.StatusAccepted, analysis)
	}
}

func getAnalysisHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.AnalysisID(chi.URLParam(r, "analysisID"))
		analysis, err := uc.Analysis.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, analysis)
	}
}

// mitigationBody is the lever payload. Omitted levers keep their baseline value.
type mitigationBody struct {
	AnalysisID model.AnalysisID `json:"analysisId"`
	model.MitigationSettings
}

func decodeMitigation(w http.ResponseWriter, r *http.Request, scoring *config.ScoringModel) (usecase.MitigationRequest, error) {
	body := mitigationBody{
		MitigationSettings: model.BaselineSettings(scoring),
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return usecase.MitigationRequest{}, goerr.Wrap(errInvalidRequest, err.Error())
	}

	return usecase.MitigationRequest{
		AnalysisID: body.AnalysisID,
		Settings:   body.MitigationSettings,
	}, nil
}

func simulateMitigationHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeMitigation(w, r, uc.Mitigation.ScoringModel())
		if err != nil {
			handleError(w, r, err)
			return
		}

		sim, err := uc.Mitigation.Simulate(r.Context(), dossierID(r), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, sim)
	}
}

func assessMitigationHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeMitigation(w, r, uc.Mitigation.ScoringModel())
		if err != nil {
			handleError(w, r, err)
			return
		}

		result, err := uc.Mitigation.Assess(r.Context(), dossierID(r), req)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}

func scoringModelHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Model        *config.ScoringModel    `json:"model"`
		MaxReduction float64                 `json:"maxReduction"`
		Presets      []model.OwnershipPreset `json:"presets"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := uc.Mitigation.ScoringModel()
		writeJSON(w, r, http.StatusOK, response{
			Model:        m,
			MaxReduction: m.MaxReduction(),
			Presets:      uc.Mitigation.Presets(),
		})
	}
}
