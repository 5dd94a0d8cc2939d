package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/creditrisk/internal/application/dto"
	"github.com/bibbank/creditrisk/internal/domain/event"
	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/port"
	"github.com/bibbank/creditrisk/internal/domain/service"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

const tracerName = "github.com/bibbank/creditrisk/internal/application/usecase"

// ScoreApplicantUseCase parses a scoring request, runs the engine, records
// the outcome and announces the decision.
type ScoreApplicantUseCase struct {
	engine    *service.ScoringEngine
	publisher port.EventPublisher
	recorder  port.ScoreRecorder
	tracer    trace.Tracer
	logger    *slog.Logger
	now       func() time.Time
}

// NewScoreApplicantUseCase wires dependencies.
func NewScoreApplicantUseCase(
	engine *service.ScoringEngine,
	publisher port.EventPublisher,
	recorder port.ScoreRecorder,
	logger *slog.Logger,
) *ScoreApplicantUseCase {
	return &ScoreApplicantUseCase{
		engine:    engine,
		publisher: publisher,
		recorder:  recorder,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute scores one applicant. Errors wrapping model.ErrInvalidInput mean
// the request itself was rejected. A failure to publish the decision event is
// logged and does not fail the request.
func (uc *ScoreApplicantUseCase) Execute(
	ctx context.Context,
	req dto.ScoreApplicantRequest,
) (dto.ScoreApplicantResponse, error) {
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx, span := uc.tracer.Start(ctx, "ScoreApplicant",
		trace.WithAttributes(attribute.String("risk.request_id", requestID)))
	defer span.End()

	// 1. Parse the request into a domain profile.
	profile, err := ToApplicantProfile(req)
	if err != nil {
		return dto.ScoreApplicantResponse{}, uc.fail(ctx, span, err)
	}

	// 2. Score.
	ev, err := uc.engine.Evaluate(profile)
	if err != nil {
		return dto.ScoreApplicantResponse{}, uc.fail(ctx, span, fmt.Errorf("score applicant: %w", err))
	}
	result := ev.Result

	span.SetAttributes(
		attribute.String("risk.model_version", result.ModelVersion),
		attribute.String("risk.rating", result.Rating.String()),
		attribute.Int("risk.credit_score", result.Score),
	)
	uc.recorder.RecordScore(ctx, result.Rating, result.Probability)

	resp := dto.ScoreApplicantResponse{
		RequestID:            requestID,
		ModelVersion:         result.ModelVersion,
		ProbabilityOfDefault: result.Probability,
		CreditScore:          result.Score,
		Rating:               result.Rating.String(),
		ScoredAt:             uc.now(),
	}

	// 3. Optional explanation, from the same evaluation.
	if req.IncludeFeatures {
		logOdds := ev.LogOdds
		resp.Features = toFeatureValues(ev.Features)
		resp.LogOdds = &logOdds
	}

	// 4. Announce the decision.
	if err := uc.publisher.Publish(ctx, event.NewCreditScoreComputed(requestID, result)); err != nil {
		span.AddEvent("decision event not published")
		uc.logger.WarnContext(ctx, "failed to publish credit score event",
			"request_id", requestID,
			"error", err,
		)
	}

	return resp, nil
}

func (uc *ScoreApplicantUseCase) fail(ctx context.Context, span trace.Span, err error) error {
	kind := port.FailureInternal
	if errors.Is(err, model.ErrInvalidInput) {
		kind = port.FailureInvalidInput
	}
	uc.recorder.RecordFailure(ctx, kind)
	span.RecordError(err)
	span.SetStatus(codes.Error, string(kind))
	return err
}

// ToApplicantProfile converts a request DTO into a domain profile. Parse
// failures are reported as *model.FieldError.
func ToApplicantProfile(req dto.ScoreApplicantRequest) (model.ApplicantProfile, error) {
	income, err := parseAmount("income", req.Income)
	if err != nil {
		return model.ApplicantProfile{}, err
	}
	loanAmount, err := parseAmount("loan_amount", req.LoanAmount)
	if err != nil {
		return model.ApplicantProfile{}, err
	}

	residence, err := valueobject.NewResidenceType(req.ResidenceType)
	if err != nil {
		return model.ApplicantProfile{}, categoryError("residence_type", err)
	}
	purpose, err := valueobject.NewLoanPurpose(req.LoanPurpose)
	if err != nil {
		return model.ApplicantProfile{}, categoryError("loan_purpose", err)
	}
	loanType, err := valueobject.NewLoanType(req.LoanType)
	if err != nil {
		return model.ApplicantProfile{}, categoryError("loan_type", err)
	}

	return model.ApplicantProfile{
		Age:                    req.Age,
		Income:                 income,
		LoanAmount:             loanAmount,
		LoanTenureMonths:       req.LoanTenureMonths,
		AvgDPDPerDelinquency:   req.AvgDPDPerDelinquency,
		DelinquencyRatio:       req.DelinquencyRatio,
		CreditUtilizationRatio: req.CreditUtilizationRatio,
		NumberOfOpenAccounts:   req.NumberOfOpenAccounts,
		ResidenceType:          residence,
		LoanPurpose:            purpose,
		LoanType:               loanType,
	}, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, &model.FieldError{Field: field, Reason: "value is required"}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &model.FieldError{Field: field, Reason: "not a decimal amount", Cause: err}
	}
	return d, nil
}

func categoryError(field string, err error) error {
	return &model.FieldError{Field: field, Reason: err.Error(), Cause: err}
}

func toFeatureValues(fv model.FeatureVector) []dto.FeatureValue {
	out := make([]dto.FeatureValue, fv.Len())
	for i := range out {
		out[i] = dto.FeatureValue{Name: fv.Name(i), Value: fv.At(i)}
	}
	return out
}
