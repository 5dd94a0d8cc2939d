package service

import (
	"fmt"

	"github.com/bibbank/creditrisk/internal/domain/model"
	"github.com/bibbank/creditrisk/internal/domain/valueobject"
)

// FeatureSchemaVersion tags the feature ordering produced by FeatureEncoder.
// Any change to featureNames or to how a feature is computed requires a new
// tag and retrained parameters.
const FeatureSchemaVersion = "credit-risk-features/v1"

// incomeEpsilon is the smallest income, in currency units, used as the
// loan_to_income denominator. A zero income therefore yields the raw loan
// amount instead of a division by zero.
const incomeEpsilon = 1.0

var featureNames = []string{
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

// One-hot vocabulary. The first value of each field is the reference category
// and encodes as all zeros.
var (
	residenceVocabulary = []valueobject.ResidenceType{
		valueobject.ResidenceTypeMortgage,
		valueobject.ResidenceTypeOwned,
		valueobject.ResidenceTypeRented,
	}
	purposeVocabulary = []valueobject.LoanPurpose{
		valueobject.LoanPurposeAuto,
		valueobject.LoanPurposeEducation,
		valueobject.LoanPurposeHome,
		valueobject.LoanPurposePersonal,
	}
	loanTypeVocabulary = []valueobject.LoanType{
		valueobject.LoanTypeSecured,
		valueobject.LoanTypeUnsecured,
	}
)

// FeatureEncoder turns an ApplicantProfile into the ordered FeatureVector the
// probability model was fitted on. It is stateless.
type FeatureEncoder struct{}

// NewFeatureEncoder returns a new encoder.
func NewFeatureEncoder() *FeatureEncoder {
	return &FeatureEncoder{}
}

// SchemaVersion returns the feature ordering tag.
func (e *FeatureEncoder) SchemaVersion() string { return FeatureSchemaVersion }

// FeatureNames returns the feature ordering.
func (e *FeatureEncoder) FeatureNames() []string {
	return append([]string(nil), featureNames...)
}

// Encode validates the profile and builds its feature vector.
func (e *FeatureEncoder) Encode(profile model.ApplicantProfile) (model.FeatureVector, error) {
	if err := profile.Validate(); err != nil {
		return model.FeatureVector{}, err
	}

	residence, err := oneHot(residenceVocabulary, profile.ResidenceType, "residence_type")
	if err != nil {
		return model.FeatureVector{}, err
	}
	purpose, err := oneHot(purposeVocabulary, profile.LoanPurpose, "loan_purpose")
	if err != nil {
		return model.FeatureVector{}, err
	}
	loanType, err := oneHot(loanTypeVocabulary, profile.LoanType, "loan_type")
	if err != nil {
		return model.FeatureVector{}, err
	}

	income := profile.Income.InexactFloat64()
	loanAmount := profile.LoanAmount.InexactFloat64()
	delinquency := profile.DelinquencyRatio / 100
	avgDPD := float64(profile.AvgDPDPerDelinquency)

	values := make([]float64, 0, len(featureNames))
	values = append(values,
		float64(profile.Age),
		float64(profile.LoanTenureMonths),
		float64(profile.NumberOfOpenAccounts),
		profile.CreditUtilizationRatio/100,
		loanAmount/max(income, incomeEpsilon),
		delinquency,
		avgDPD,
		delinquency*avgDPD,
	)
	values = append(values, residence...)
	values = append(values, purpose...)
	values = append(values, loanType...)

	return model.NewFeatureVector(featureNames, values)
}

type category[T any] interface {
	Equal(T) bool
	String() string
}

// oneHot expands v against vocab, dropping the reference category at vocab[0].
func oneHot[T category[T]](vocab []T, v T, field string) ([]float64, error) {
	out := make([]float64, len(vocab)-1)
	for i, candidate := range vocab {
		if candidate.Equal(v) {
			if i > 0 {
				out[i-1] = 1
			}
			return out, nil
		}
	}
	return nil, &model.FieldError{
		Field:  field,
		Reason: fmt.Sprintf("%q is not in the vocabulary", v.String()),
		Cause:  valueobject.ErrInvalidCategory,
	}
}
