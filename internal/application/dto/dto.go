package dto

import "time"

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ScoreApplicantRequest carries the applicant attributes to be scored.
// Amounts are decimal strings; categories use their exact names.
type ScoreApplicantRequest struct {
	RequestID              string  `json:"request_id,omitempty"`
	Income                 string  `json:"income"`
	LoanAmount             string  `json:"loan_amount"`
	ResidenceType          string  `json:"residence_type"`
	LoanPurpose            string  `json:"loan_purpose"`
	LoanType               string  `json:"loan_type"`
	DelinquencyRatio       float64 `json:"delinquency_ratio"`
	CreditUtilizationRatio float64 `json:"credit_utilization_ratio"`
	Age                    int     `json:"age"`
	LoanTenureMonths       int     `json:"loan_tenure_months"`
	AvgDPDPerDelinquency   int     `json:"avg_dpd_per_delinquency"`
	NumberOfOpenAccounts   int     `json:"number_of_open_accounts"`
	IncludeFeatures        bool    `json:"include_features,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScoreApplicantResponse is the external representation of a scoring result.
type ScoreApplicantResponse struct {
	ScoredAt             time.Time      `json:"scored_at"`
	RequestID            string         `json:"request_id"`
	ModelVersion         string         `json:"model_version"`
	Rating               string         `json:"rating"`
	Features             []FeatureValue `json:"features,omitempty"`
	ProbabilityOfDefault float64        `json:"probability_of_default"`
	LogOdds              *float64       `json:"log_odds,omitempty"`
	CreditScore          int            `json:"credit_score"`
}

// FeatureValue is one encoded model input.
type FeatureValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ModelDescriptionResponse describes the loaded parameter artifact.
type ModelDescriptionResponse struct {
	ModelVersion   string               `json:"model_version"`
	FeatureSchema  string               `json:"feature_schema"`
	ArtifactDigest string               `json:"artifact_digest,omitempty"`
	Features       []FeatureCoefficient `json:"features"`
	RatingBands    []RatingBandResponse `json:"rating_bands"`
	Intercept      float64              `json:"intercept"`
	MinScore       int                  `json:"min_score"`
	MaxScore       int                  `json:"max_score"`
}

// FeatureCoefficient pairs a feature with its trained coefficient.
type FeatureCoefficient struct {
	Name        string  `json:"name"`
	Coefficient float64 `json:"coefficient"`
}

// RatingBandResponse is one row of the rating table. MinScore is inclusive.
type RatingBandResponse struct {
	Rating   string `json:"rating"`
	MinScore int    `json:"min_score"`
	MaxScore int    `json:"max_score"`
}
