package model_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
	"github.com/bibbank/creditrisk/pkg/testutil"
)

func TestApplicantProfile_Validate_Valid(t *testing.T) {
	require.NoError(t, testutil.ExampleProfile().Validate())

	edge := testutil.ExampleProfile()
	edge.Age = 100
	edge.Income = decimal.Zero
	edge.LoanAmount = decimal.Zero
	edge.LoanTenureMonths = 0
	edge.DelinquencyRatio = 100
	edge.CreditUtilizationRatio = 0
	edge.NumberOfOpenAccounts = 0
	assert.NoError(t, edge.Validate())
}

func TestApplicantProfile_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.ApplicantProfile)
		field  string
	}{
		{"age below 18", func(p *model.ApplicantProfile) { p.Age = 17 }, "age"},
		{"age above 100", func(p *model.ApplicantProfile) { p.Age = 101 }, "age"},
		{"negative income", func(p *model.ApplicantProfile) { p.Income = decimal.NewFromInt(-1) }, "income"},
		{"negative loan amount", func(p *model.ApplicantProfile) { p.LoanAmount = decimal.NewFromFloat(-0.01) }, "loan_amount"},
		{"loan amount above cap", func(p *model.ApplicantProfile) { p.LoanAmount = model.MaxCurrencyAmount.Add(decimal.NewFromInt(1)) }, "loan_amount"},
		{"negative tenure", func(p *model.ApplicantProfile) { p.LoanTenureMonths = -1 }, "loan_tenure_months"},
		{"negative dpd", func(p *model.ApplicantProfile) { p.AvgDPDPerDelinquency = -5 }, "avg_dpd_per_delinquency"},
		{"delinquency above 100", func(p *model.ApplicantProfile) { p.DelinquencyRatio = 100.5 }, "delinquency_ratio"},
		{"delinquency NaN", func(p *model.ApplicantProfile) { p.DelinquencyRatio = math.NaN() }, "delinquency_ratio"},
		{"utilization negative", func(p *model.ApplicantProfile) { p.CreditUtilizationRatio = -1 }, "credit_utilization_ratio"},
		{"utilization infinite", func(p *model.ApplicantProfile) { p.CreditUtilizationRatio = math.Inf(1) }, "credit_utilization_ratio"},
		{"negative open accounts", func(p *model.ApplicantProfile) { p.NumberOfOpenAccounts = -1 }, "number_of_open_accounts"},
		{"missing residence type", func(p *model.ApplicantProfile) { p.ResidenceType = valueobject.ResidenceType{} }, "residence_type"},
		{"missing loan purpose", func(p *model.ApplicantProfile) { p.LoanPurpose = valueobject.LoanPurpose{} }, "loan_purpose"},
		{"missing loan type", func(p *model.ApplicantProfile) { p.LoanType = valueobject.LoanType{} }, "loan_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.ExampleProfile()
			tt.mutate(&p)

			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidInput))

			var fe *model.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestApplicantProfile_Validate_MissingCategoryIsInvalidCategory(t *testing.T) {
	p := testutil.ExampleProfile()
	p.ResidenceType = valueobject.ResidenceType{}

	err := p.Validate()
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.ErrorIs(t, err, valueobject.ErrInvalidCategory)
}

func TestFieldError_Message(t *testing.T) {
	p := testutil.ExampleProfile()
	p.Age = 12

	err := p.Validate()
	testutil.RequireInvalidField(t, err, "age")
	assert.EqualError(t, err, "invalid input: age: must be at least 18")
}
