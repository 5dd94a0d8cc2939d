package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory is returned when a categorical attribute carries a value
// outside its declared vocabulary.
var ErrInvalidCategory = errors.New("invalid category")

// ---------------------------------------------------------------------------
// ResidenceType – immutable value object
// ---------------------------------------------------------------------------

// ResidenceType describes the applicant's current residence ownership.
type ResidenceType struct {
	value string
}

const (
	residenceOwned    = "Owned"
	residenceRented   = "Rented"
	residenceMortgage = "Mortgage"
)

var (
	ResidenceTypeOwned    = ResidenceType{value: residenceOwned}
	ResidenceTypeRented   = ResidenceType{value: residenceRented}
	ResidenceTypeMortgage = ResidenceType{value: residenceMortgage}
)

var validResidenceTypes = map[string]ResidenceType{
	residenceOwned:    ResidenceTypeOwned,
	residenceRented:   ResidenceTypeRented,
	residenceMortgage: ResidenceTypeMortgage,
}

// NewResidenceType creates a ResidenceType from a raw string.
func NewResidenceType(s string) (ResidenceType, error) {
	v, ok := validResidenceTypes[s]
	if !ok {
		return ResidenceType{}, fmt.Errorf("%w: residence type %q", ErrInvalidCategory, s)
	}
	return v, nil
}

// String returns the string representation of the residence type.
func (r ResidenceType) String() string { return r.value }

// IsZero returns true if the residence type has not been initialised.
func (r ResidenceType) IsZero() bool { return r.value == "" }

// Equal returns true when both residence types carry the same value.
func (r ResidenceType) Equal(other ResidenceType) bool { return r.value == other.value }

// ---------------------------------------------------------------------------
// LoanPurpose – immutable value object
// ---------------------------------------------------------------------------

// LoanPurpose describes what the requested loan will be used for.
type LoanPurpose struct {
	value string
}

const (
	purposeEducation = "Education"
	purposeHome      = "Home"
	purposeAuto      = "Auto"
	purposePersonal  = "Personal"
)

var (
	LoanPurposeEducation = LoanPurpose{value: purposeEducation}
	LoanPurposeHome      = LoanPurpose{value: purposeHome}
	LoanPurposeAuto      = LoanPurpose{value: purposeAuto}
	LoanPurposePersonal  = LoanPurpose{value: purposePersonal}
)

var validLoanPurposes = map[string]LoanPurpose{
	purposeEducation: LoanPurposeEducation,
	purposeHome:      LoanPurposeHome,
	purposeAuto:      LoanPurposeAuto,
	purposePersonal:  LoanPurposePersonal,
}

// NewLoanPurpose creates a LoanPurpose from a raw string.
func NewLoanPurpose(s string) (LoanPurpose, error) {
	v, ok := validLoanPurposes[s]
	if !ok {
		return LoanPurpose{}, fmt.Errorf("%w: loan purpose %q", ErrInvalidCategory, s)
	}
	return v, nil
}

// String returns the string representation of the loan purpose.
func (p LoanPurpose) String() string { return p.value }

// IsZero returns true if the loan purpose has not been initialised.
func (p LoanPurpose) IsZero() bool { return p.value == "" }

// Equal returns true when both purposes carry the same value.
func (p LoanPurpose) Equal(other LoanPurpose) bool { return p.value == other.value }

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType distinguishes collateralised from uncollateralised lending.
type LoanType struct {
	value string
}

const (
	loanTypeSecured   = "Secured"
	loanTypeUnsecured = "Unsecured"
)

var (
	LoanTypeSecured   = LoanType{value: loanTypeSecured}
	LoanTypeUnsecured = LoanType{value: loanTypeUnsecured}
)

var validLoanTypes = map[string]LoanType{
	loanTypeSecured:   LoanTypeSecured,
	loanTypeUnsecured: LoanTypeUnsecured,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("%w: loan type %q", ErrInvalidCategory, s)
	}
	return v, nil
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }
