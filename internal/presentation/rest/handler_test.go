package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/application/dto"
	"github.com/bibbank/creditrisk/internal/application/usecase"
	"github.com/bibbank/creditrisk/internal/domain/event"
	"github.com/bibbank/creditrisk/internal/domain/port"
	"github.com/bibbank/creditrisk/internal/domain/service"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
	"github.com/bibbank/creditrisk/pkg/testutil"
)

type discardPublisher struct{}

func (discardPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }

type countingRecorder struct {
	scores   int
	failures []port.FailureKind
}

func (r *countingRecorder) RecordScore(context.Context, valueobject.Rating, float64) { r.scores++ }
func (r *countingRecorder) RecordFailure(_ context.Context, kind port.FailureKind) {
	r.failures = append(r.failures, kind)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T) (*http.ServeMux, *HealthHandler, *countingRecorder) {
	t.Helper()
	engine, err := service.NewScoringEngine(testutil.IllustrativeParameters(t))
	require.NoError(t, err)

	logger := testLogger()
	recorder := &countingRecorder{}
	health := NewHealthHandler("credit-risk-service", "credit-risk-lr-illustrative-1", logger)
	score := NewScoreHandler(
		usecase.NewScoreApplicantUseCase(engine, discardPublisher{}, recorder, logger),
		usecase.NewDescribeModelUseCase(engine, "sha256:test"),
		logger,
	)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	})
	return NewRouter(health, score, metrics), health, recorder
}

func exampleBody(t *testing.T, mutate func(*dto.ScoreApplicantRequest)) io.Reader {
	t.Helper()
	req := dto.ScoreApplicantRequest{
		RequestID:              "http-1",
		Age:                    28,
		Income:                 "1200000",
		LoanAmount:             "2560000",
		LoanTenureMonths:       36,
		AvgDPDPerDelinquency:   20,
		DelinquencyRatio:       30,
		CreditUtilizationRatio: 30,
		NumberOfOpenAccounts:   2,
		ResidenceType:          "Owned",
		LoanPurpose:            "Personal",
		LoanType:               "Unsecured",
	}
	if mutate != nil {
		mutate(&req)
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "credit-risk-service", resp.Service)
}

func TestReadyzFollowsReadyFlag(t *testing.T) {
	router, health, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	health.SetReady(true)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "credit-risk-lr-illustrative-1", resp.Checks["model"])
}

func TestScoreEndpoint(t *testing.T) {
	t.Run("scores the reference applicant", func(t *testing.T) {
		router, _, recorder := newTestRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", exampleBody(t, nil)))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp dto.ScoreApplicantResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "http-1", resp.RequestID)
		assert.Equal(t, 592, resp.CreditScore)
		assert.Equal(t, "Average", resp.Rating)
		assert.InDelta(t, 0.42955297971938, resp.ProbabilityOfDefault, 1e-9)
		assert.Empty(t, resp.Features)
		assert.Equal(t, 1, recorder.scores)
	})

	t.Run("includes features on request", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		body := exampleBody(t, func(r *dto.ScoreApplicantRequest) { r.IncludeFeatures = true })
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", body))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.ScoreApplicantResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Features, 14)
		require.NotNil(t, resp.LogOdds)
		assert.InDelta(t, -0.2836752136752133, *resp.LogOdds, 1e-9)
	})

	t.Run("invalid field is a 400 naming the field", func(t *testing.T) {
		router, _, recorder := newTestRouter(t)

		body := exampleBody(t, func(r *dto.ScoreApplicantRequest) { r.LoanType = "unsecured" })
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "loan_type", resp.Field)
		assert.Equal(t, []port.FailureKind{port.FailureInvalidInput}, recorder.failures)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(`{"age":`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(`{"salary":"1"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method is rejected", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/score", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestWriteErrorHidesInternalFailures(t *testing.T) {
	h := &ScoreHandler{logger: testLogger()}

	rec := httptest.NewRecorder()
	h.writeError(rec, httptest.NewRequest(http.MethodPost, "/v1/score", nil), errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestModelEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/model", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.ModelDescriptionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "sha256:test", resp.ArtifactDigest)
	require.Len(t, resp.RatingBands, 4)
	assert.Equal(t, dto.RatingBandResponse{Rating: "Poor", MinScore: 300, MaxScore: 580}, resp.RatingBands[0])
}

func TestMetricsMounted(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}
