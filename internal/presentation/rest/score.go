package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bibbank/creditrisk/internal/application/dto"
	"github.com/bibbank/creditrisk/internal/application/usecase"
	"github.com/bibbank/creditrisk/internal/domain/model"
)

// maxBodyBytes bounds the size of a scoring request body.
const maxBodyBytes = 64 << 10

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ScoreHandler exposes the scoring use cases over JSON/HTTP.
type ScoreHandler struct {
	scoreApplicant *usecase.ScoreApplicantUseCase
	describeModel  *usecase.DescribeModelUseCase
	logger         *slog.Logger
}

// NewScoreHandler creates a new HTTP scoring handler.
func NewScoreHandler(
	scoreApplicant *usecase.ScoreApplicantUseCase,
	describeModel *usecase.DescribeModelUseCase,
	logger *slog.Logger,
) *ScoreHandler {
	return &ScoreHandler{
		scoreApplicant: scoreApplicant,
		describeModel:  describeModel,
		logger:         logger,
	}
}

// RegisterRoutes registers the scoring endpoints on the provided ServeMux.
func (h *ScoreHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/score", h.Score)
	mux.HandleFunc("GET /v1/model", h.Model)
}

// Score handles POST /v1/score.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreApplicantRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "malformed request body: " + err.Error()})
		return
	}

	resp, err := h.scoreApplicant.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// Model handles GET /v1/model.
func (h *ScoreHandler) Model(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.describeModel.Execute())
}

func (h *ScoreHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrInvalidInput) {
		resp := ErrorResponse{Error: err.Error()}
		var fieldErr *model.FieldError
		if errors.As(err, &fieldErr) {
			resp = ErrorResponse{Error: fieldErr.Reason, Field: fieldErr.Field}
		}
		writeJSON(w, h.logger, http.StatusBadRequest, resp)
		return
	}

	h.logger.ErrorContext(r.Context(), "failed to score applicant", slog.String("error", err.Error()))
	writeJSON(w, h.logger, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}
