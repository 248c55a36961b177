package http

import (
	"errors"
	"net/http"

	"github.com/secmon-lab/cipher/pkg/usecase"
)

var errInvalidRequest = errors.New("invalid request")

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrDossierNotFound),
		errors.Is(err, usecase.ErrNodeNotFound),
		errors.Is(err, usecase.ErrAnalysisNotFound):
		return http.StatusNotFound

	case errors.Is(err, errInvalidRequest),
		errors.Is(err, usecase.ErrInvalidSettings),
		errors.Is(err, usecase.ErrAnalysisMismatch):
		return http.StatusBadRequest

	case errors.Is(err, usecase.ErrMitigationUnavailable),
		errors.Is(err, usecase.ErrAnalysisInProgress):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
