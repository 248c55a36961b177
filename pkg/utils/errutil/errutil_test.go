package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/utils/errutil"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
)

func bufferLogger(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logging.With(context.Background(), logger)
}

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	ctx := bufferLogger(&buf)

	err := goerr.New("boom", goerr.V("dossier_id", "red-october"))
	gt.Error(t, errutil.Handle(ctx, err, "operation failed")).Is(err)
	gt.String(t, buf.String()).Contains(`"level":"ERROR"`)
	gt.String(t, buf.String()).Contains("red-october")

	gt.NoError(t, errutil.Handle(ctx, nil, "ignored"))
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	ctx := bufferLogger(&buf)

	errutil.Warn(ctx, errors.New("llm unavailable"), "using fallback")
	gt.String(t, buf.String()).Contains(`"level":"WARN"`)
	gt.String(t, buf.String()).Contains("using fallback")
}

func TestHandleHTTP(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "client error", status: http.StatusNotFound, wantLevel: `"level":"WARN"`},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: `"level":"ERROR"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := bufferLogger(&buf)
			w := httptest.NewRecorder()

			errutil.HandleHTTP(ctx, w, goerr.New("dossier not found"), tc.status)

			gt.Value(t, w.Code).Equal(tc.status)
			gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

			var body map[string]string
			gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
			gt.Value(t, body["error"]).Equal("dossier not found")
			gt.String(t, buf.String()).Contains(tc.wantLevel)
		})
	}
}
