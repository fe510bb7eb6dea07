package model

import "github.com/entitymatch/reconciler/internal/config"

// Severity is the penalty tier a Discrepancy carries.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Penalty returns the point deduction for the severity tier, read from t
// (spec.md §3 default: CRITICAL=-25, HIGH=-15, MEDIUM=-10, LOW=-5).
func (s Severity) Penalty(t config.Thresholds) int {
	switch s {
	case SeverityCritical:
		return t.PenaltyCritical
	case SeverityHigh:
		return t.PenaltyHigh
	case SeverityMedium:
		return t.PenaltyMedium
	case SeverityLow:
		return t.PenaltyLow
	default:
		return 0
	}
}

// DiscrepancySource is the axis a Discrepancy was found along.
type DiscrepancySource string

const (
	SourceIdentifierCheck  DiscrepancySource = "IDENTIFIER_CHECK"
	SourceGeographicCheck  DiscrepancySource = "GEOGRAPHIC_CHECK"
	SourceNameCheck        DiscrepancySource = "NAME_CHECK"
	SourceCrossSourceCheck DiscrepancySource = "CROSS_SOURCE_CHECK"
	SourceInternalCheck    DiscrepancySource = "INTERNAL_CHECK"
)

// DiscrepancyType is the closed vocabulary from spec.md §4.7.
type DiscrepancyType string

const (
	TypeMEIMismatch                 DiscrepancyType = "MEI_MISMATCH"
	TypeMEIMissingLoanIQ            DiscrepancyType = "MEI_MISSING_LOANIQ"
	TypeLEIMismatch                 DiscrepancyType = "LEI_MISMATCH"
	TypeEINMismatch                 DiscrepancyType = "EIN_MISMATCH"
	TypeDebtDomainIDMismatch        DiscrepancyType = "DEBT_DOMAIN_ID_MISMATCH"
	TypeCountryMismatchMEIAddress   DiscrepancyType = "COUNTRY_MISMATCH_MEI_ADDRESS"
	TypeCountryMismatchFormLoanIQ   DiscrepancyType = "COUNTRY_MISMATCH_FORM_LOANIQ"
	TypeCountryMismatchTaxLegal     DiscrepancyType = "COUNTRY_MISMATCH_TAX_LEGAL"
	TypeDBANotInLoanIQ              DiscrepancyType = "DBA_NOT_IN_LOANIQ"
	TypeFundManagerMismatch         DiscrepancyType = "FUND_MANAGER_MISMATCH"
	TypeFundManagerMissingLoanIQ    DiscrepancyType = "FUND_MANAGER_MISSING_LOANIQ"
	TypeUnexpectedFundManagerLoanIQ DiscrepancyType = "UNEXPECTED_FUND_MANAGER_LOANIQ"
	TypeEINMismatchCrossForm        DiscrepancyType = "EIN_MISMATCH_CROSS_FORM"
	TypeLegalNameMismatchCrossForm  DiscrepancyType = "LEGAL_NAME_MISMATCH_CROSS_FORM"
	TypeCountryMismatchCrossForm    DiscrepancyType = "COUNTRY_MISMATCH_CROSS_FORM"
	TypeMEIMismatchCrossForm        DiscrepancyType = "MEI_MISMATCH_CROSS_FORM"
	TypePotentialDuplicateShortName DiscrepancyType = "POTENTIAL_DUPLICATE_SHORT_NAME"
	TypeOrphanedLocationRecord      DiscrepancyType = "ORPHANED_LOCATION_RECORD"
	TypeInternalCountryMismatch     DiscrepancyType = "INTERNAL_COUNTRY_MISMATCH"

	// TypeEntityTypeMismatch is emitted by the fuzzy name matcher itself
	// (spec.md §4.4), outside the closed 19-type table of §4.7, when one
	// side of a pair carries a fund manager and the other does not.
	TypeEntityTypeMismatch DiscrepancyType = "ENTITY_TYPE_MISMATCH"
)

// DiscrepancyDetails is the tagged-variant payload for a Discrepancy,
// carrying exactly the fields its type needs. Implementations live in
// package discrepancy, one struct per DiscrepancyType.
type DiscrepancyDetails interface {
	DiscrepancyType() DiscrepancyType
}

// Discrepancy is one finding attached to a candidate match.
type Discrepancy struct {
	Type        DiscrepancyType
	Severity    Severity
	Source      DiscrepancySource
	Description string
	Details     DiscrepancyDetails
}
