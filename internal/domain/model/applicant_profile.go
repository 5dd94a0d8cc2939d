package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// MaxCurrencyAmount caps income and loan amount so every derived feature stays
// finite after conversion to float64.
var MaxCurrencyAmount = decimal.New(1, 15)

// ApplicantProfile holds the raw attributes submitted for one assessment.
// Percentages are in [0,100]; counts and amounts are non-negative.
type ApplicantProfile struct {
	Income                 decimal.Decimal           `json:"income"`
	LoanAmount             decimal.Decimal           `json:"loan_amount"`
	ResidenceType          valueobject.ResidenceType `json:"residence_type"`
	LoanPurpose            valueobject.LoanPurpose   `json:"loan_purpose"`
	LoanType               valueobject.LoanType      `json:"loan_type"`
	DelinquencyRatio       float64                   `json:"delinquency_ratio" validate:"gte=0,lte=100"`
	CreditUtilizationRatio float64                   `json:"credit_utilization_ratio" validate:"gte=0,lte=100"`
	Age                    int                       `json:"age" validate:"gte=18,lte=100"`
	LoanTenureMonths       int                       `json:"loan_tenure_months" validate:"gte=0"`
	AvgDPDPerDelinquency   int                       `json:"avg_dpd_per_delinquency" validate:"gte=0"`
	NumberOfOpenAccounts   int                       `json:"number_of_open_accounts" validate:"gte=0"`
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its declared domain and returns a
// *FieldError for the first violation.
func (p ApplicantProfile) Validate() error {
	if err := profileValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0].Field(), describeTag(verrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateAmount("income", p.Income); err != nil {
		return err
	}
	if err := validateAmount("loan_amount", p.LoanAmount); err != nil {
		return err
	}

	if p.ResidenceType.IsZero() {
		return &FieldError{Field: "residence_type", Reason: "value is required", Cause: valueobject.ErrInvalidCategory}
	}
	if p.LoanPurpose.IsZero() {
		return &FieldError{Field: "loan_purpose", Reason: "value is required", Cause: valueobject.ErrInvalidCategory}
	}
	if p.LoanType.IsZero() {
		return &FieldError{Field: "loan_type", Reason: "value is required", Cause: valueobject.ErrInvalidCategory}
	}
	return nil
}

func validateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fieldError(field, "must be non-negative")
	}
	if amount.GreaterThan(MaxCurrencyAmount) {
		return fieldError(field, "must not exceed "+MaxCurrencyAmount.String())
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
