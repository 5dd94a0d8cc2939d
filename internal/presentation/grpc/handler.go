package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/creditrisk/internal/application/dto"
	"github.com/bibbank/creditrisk/internal/application/usecase"
	"github.com/bibbank/creditrisk/internal/domain/model"
)

// Compile-time assertion that CreditRiskHandler implements CreditRiskServiceServer.
var _ CreditRiskServiceServer = (*CreditRiskHandler)(nil)

// CreditRiskHandler implements the gRPC CreditRiskServiceServer interface.
type CreditRiskHandler struct {
	UnimplementedCreditRiskServiceServer
	scoreApplicant *usecase.ScoreApplicantUseCase
	describeModel  *usecase.DescribeModelUseCase
	logger         *slog.Logger
}

// NewCreditRiskHandler creates a new gRPC handler.
func NewCreditRiskHandler(
	scoreApplicant *usecase.ScoreApplicantUseCase,
	describeModel *usecase.DescribeModelUseCase,
	logger *slog.Logger,
) *CreditRiskHandler {
	return &CreditRiskHandler{
		scoreApplicant: scoreApplicant,
		describeModel:  describeModel,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// ApplicantMsg represents the proto Applicant message.
type ApplicantMsg struct {
	Income                 string  `json:"income"`
	LoanAmount             string  `json:"loan_amount"`
	ResidenceType          string  `json:"residence_type"`
	LoanPurpose            string  `json:"loan_purpose"`
	LoanType               string  `json:"loan_type"`
	DelinquencyRatio       float64 `json:"delinquency_ratio"`
	CreditUtilizationRatio float64 `json:"credit_utilization_ratio"`
	Age                    int32   `json:"age"`
	LoanTenureMonths       int32   `json:"loan_tenure_months"`
	AvgDPDPerDelinquency   int32   `json:"avg_dpd_per_delinquency"`
	NumberOfOpenAccounts   int32   `json:"number_of_open_accounts"`
}

// ScoreApplicantRequest represents the proto ScoreApplicantRequest message.
type ScoreApplicantRequest struct {
	Applicant       *ApplicantMsg `json:"applicant"`
	RequestID       string        `json:"request_id"`
	IncludeFeatures bool          `json:"include_features"`
}

// FeatureValueMsg represents the proto FeatureValue message.
type FeatureValueMsg struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CreditAssessmentMsg represents the proto CreditAssessment message.
type CreditAssessmentMsg struct {
	LogOdds              *float64          `json:"log_odds,omitempty"`
	RequestID            string            `json:"request_id"`
	ModelVersion         string            `json:"model_version"`
	Rating               string            `json:"rating"`
	ScoredAt             string            `json:"scored_at"`
	Features             []FeatureValueMsg `json:"features,omitempty"`
	ProbabilityOfDefault float64           `json:"probability_of_default"`
	CreditScore          int32             `json:"credit_score"`
}

// ScoreApplicantResponse represents the proto ScoreApplicantResponse message.
type ScoreApplicantResponse struct {
	Assessment *CreditAssessmentMsg `json:"assessment"`
}

// DescribeModelRequest represents the proto DescribeModelRequest message.
type DescribeModelRequest struct{}

// RatingBandMsg represents the proto RatingBand message.
type RatingBandMsg struct {
	Rating   string `json:"rating"`
	MinScore int32  `json:"min_score"`
	MaxScore int32  `json:"max_score"`
}

// FeatureCoefficientMsg represents the proto FeatureCoefficient message.
type FeatureCoefficientMsg struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}

// DescribeModelResponse represents the proto DescribeModelResponse message.
type DescribeModelResponse struct {
	ModelVersion   string                  `json:"model_version"`
	FeatureSchema  string                  `json:"feature_schema"`
	ArtifactDigest string                  `json:"artifact_digest"`
	Features       []FeatureCoefficientMsg `json:"features"`
	RatingBands    []RatingBandMsg         `json:"rating_bands"`
	Intercept      float64                 `json:"intercept"`
	MinScore       int32                   `json:"min_score"`
	MaxScore       int32                   `json:"max_score"`
}

// ScoreApplicant handles a scoring request.
func (h *CreditRiskHandler) ScoreApplicant(ctx context.Context, req *ScoreApplicantRequest) (*ScoreApplicantResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.Applicant == nil {
		return nil, status.Error(codes.InvalidArgument, "applicant is required")
	}

	a := req.Applicant
	result, err := h.scoreApplicant.Execute(ctx, dto.ScoreApplicantRequest{
		RequestID:              req.RequestID,
		Age:                    int(a.Age),
		Income:                 a.Income,
		LoanAmount:             a.LoanAmount,
		LoanTenureMonths:       int(a.LoanTenureMonths),
		AvgDPDPerDelinquency:   int(a.AvgDPDPerDelinquency),
		DelinquencyRatio:       a.DelinquencyRatio,
		CreditUtilizationRatio: a.CreditUtilizationRatio,
		NumberOfOpenAccounts:   int(a.NumberOfOpenAccounts),
		ResidenceType:          a.ResidenceType,
		LoanPurpose:            a.LoanPurpose,
		LoanType:               a.LoanType,
		IncludeFeatures:        req.IncludeFeatures,
	})
	if err != nil {
		return nil, h.statusFor(ctx, "score applicant", err)
	}

	return &ScoreApplicantResponse{Assessment: toAssessmentMsg(result)}, nil
}

// DescribeModel returns the loaded model description.
func (h *CreditRiskHandler) DescribeModel(_ context.Context, _ *DescribeModelRequest) (*DescribeModelResponse, error) {
	desc := h.describeModel.Execute()

	resp := &DescribeModelResponse{
		ModelVersion:   desc.ModelVersion,
		FeatureSchema:  desc.FeatureSchema,
		ArtifactDigest: desc.ArtifactDigest,
		Intercept:      desc.Intercept,
		MinScore:       int32(desc.MinScore),
		MaxScore:       int32(desc.MaxScore),
		Features:       make([]FeatureCoefficientMsg, len(desc.Features)),
		RatingBands:    make([]RatingBandMsg, len(desc.RatingBands)),
	}
	for i, f := range desc.Features {
		resp.Features[i] = FeatureCoefficientMsg{Name: f.Name, Coefficient: f.Coefficient}
	}
	for i, b := range desc.RatingBands {
		resp.RatingBands[i] = RatingBandMsg{Rating: b.Rating, MinScore: int32(b.MinScore), MaxScore: int32(b.MaxScore)}
	}
	return resp, nil
}

// statusFor maps use case errors to gRPC status. Invalid input is reported to
// the caller verbatim; anything else is logged and hidden.
func (h *CreditRiskHandler) statusFor(ctx context.Context, op string, err error) error {
	if errors.Is(err, model.ErrInvalidInput) {
		var fieldErr *model.FieldError
		if errors.As(err, &fieldErr) {
			return status.Errorf(codes.InvalidArgument, "%s: %s", fieldErr.Field, fieldErr.Reason)
		}
		return status.Error(codes.InvalidArgument, err.Error())
	}

	h.logger.ErrorContext(ctx, "failed to "+op, slog.String("error", err.Error()))
	return status.Error(codes.Internal, "internal error")
}

func toAssessmentMsg(r dto.ScoreApplicantResponse) *CreditAssessmentMsg {
	msg := &CreditAssessmentMsg{
		RequestID:            r.RequestID,
		ModelVersion:         r.ModelVersion,
		Rating:               r.Rating,
		ProbabilityOfDefault: r.ProbabilityOfDefault,
		CreditScore:          int32(r.CreditScore),
		ScoredAt:             r.ScoredAt.Format(time.RFC3339Nano),
		LogOdds:              r.LogOdds,
	}
	for _, f := range r.Features {
		msg.Features = append(msg.Features, FeatureValueMsg{Name: f.Name, Value: f.Value})
	}
	return msg
}
