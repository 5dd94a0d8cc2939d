package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// Fixed UUIDs for deterministic testing
var (
	TestRequestID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestRequestID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// IllustrativeFeatureNames mirrors the credit-risk-features/v1 ordering.
var IllustrativeFeatureNames = []string{
	"age",
	"loan_tenure_months",
	"number_of_open_accounts",
	"credit_utilization_ratio",
	"loan_to_income",
	"delinquency_ratio",
	"avg_dpd_per_delinquency",
	"delinquency_weighted_dpd",
	"residence_type_owned",
	"residence_type_rented",
	"loan_purpose_education",
	"loan_purpose_home",
	"loan_purpose_personal",
	"loan_type_unsecured",
}

// ExampleProfile returns the reference applicant used for golden tests.
func ExampleProfile() model.ApplicantProfile {
	return model.ApplicantProfile{
		Age:                    28,
		Income:                 decimal.NewFromInt(1_200_000),
		LoanAmount:             decimal.NewFromInt(2_560_000),
		LoanTenureMonths:       36,
		AvgDPDPerDelinquency:   20,
		DelinquencyRatio:       30,
		CreditUtilizationRatio: 30,
		NumberOfOpenAccounts:   2,
		ResidenceType:          valueobject.ResidenceTypeOwned,
		LoanPurpose:            valueobject.LoanPurposePersonal,
		LoanType:               valueobject.LoanTypeUnsecured,
	}
}

// IllustrativeSpec returns the parameter content shipped in
// models/credit_risk_v1.json.
func IllustrativeSpec() model.ParameterSpec {
	return model.ParameterSpec{
		ModelVersion:  "credit-risk-lr-illustrative-1",
		FeatureSchema: "credit-risk-features/v1",
		FeatureNames:  append([]string(nil), IllustrativeFeatureNames...),
		Coefficients: []float64{
			-1.4, 1.3, 0.6, 2.2, 3.8, 2.9, 1.7, 1.1,
			-0.55, 0.25, -0.3, 0.45, 0.2, 0.65,
		},
		Intercept: -5.2,
		FeatureScaling: []model.FeatureScaling{
			{Min: 18, Max: 70},
			{Min: 6, Max: 60},
			{Min: 1, Max: 4},
			{Min: 0, Max: 1},
			{Min: 0, Max: 5},
			{Min: 0, Max: 1},
			{Min: 0, Max: 50},
			{Min: 0, Max: 50},
			{Min: 0, Max: 1},
			{Min: 0, Max: 1},
			{Min: 0, Max: 1},
			{Min: 0, Max: 1},
			{Min: 0, Max: 1},
			{Min: 0, Max: 1},
		},
		ScoreScale: model.ScoreScale{
			Offset:   580,
			Factor:   43.2808512266689,
			MinScore: 300,
			MaxScore: 900,
		},
		RatingBands: []model.RatingBand{
			{Rating: valueobject.RatingPoor, MaxScore: 580},
			{Rating: valueobject.RatingAverage, MaxScore: 670},
			{Rating: valueobject.RatingGood, MaxScore: 750},
			{Rating: valueobject.RatingExcellent, MaxScore: 900},
		},
	}
}

// IllustrativeParameters builds ModelParameters from IllustrativeSpec.
func IllustrativeParameters(t *testing.T) model.ModelParameters {
	t.Helper()
	params, err := model.NewModelParameters(IllustrativeSpec())
	require.NoError(t, err)
	return params
}
