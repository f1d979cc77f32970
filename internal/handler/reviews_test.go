package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSummarizeFallbackWithoutUpstream(t *testing.T) {
	e, _, _ := newTestEnv()
	h := NewReviewsHandler("", zap.NewNop())

	rec := doJSON(e, h.Summarize, http.MethodPost, "/v1/reviews/summary",
		`{"reviewText":"La comida estuvo excelente."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp summarizeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, fallbackSummary, resp.Summary)
}

func TestSummarizeForwardsUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":"Todo muy rico."}`))
	}))
	defer upstream.Close()

	e, _, _ := newTestEnv()
	h := NewReviewsHandler(upstream.URL, zap.NewNop())

	rec := doJSON(e, h.Summarize, http.MethodPost, "/v1/reviews/summary",
		`{"reviewText":"La comida estuvo excelente."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp summarizeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Todo muy rico.", resp.Summary)
}

func TestSummarizeFallbackOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	e, _, _ := newTestEnv()
	h := NewReviewsHandler(upstream.URL, zap.NewNop())

	rec := doJSON(e, h.Summarize, http.MethodPost, "/v1/reviews/summary",
		`{"reviewText":"La comida estuvo excelente."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), fallbackSummary[:20])
}

func TestSummarizeRequiresText(t *testing.T) {
	e, _, _ := newTestEnv()
	h := NewReviewsHandler("", zap.NewNop())

	rec := doJSON(e, h.Summarize, http.MethodPost, "/v1/reviews/summary", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
