package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/page-reach-sync/pkg/apiErrors"
	"github.com/vfg2006/page-reach-sync/pkg/log"
)

func TestLoggingMiddleware_PropagaIDDeCorrelacao(t *testing.T) {
	var gotID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))

	assert.NotEmpty(t, gotID)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestLogPanicMiddleware_RespondeJSONPadrao(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("estouro proposital")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/sync", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, apiErrors.ErrInternalServer, body["code"])
}
