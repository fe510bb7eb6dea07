// Package discrepancy implements the discrepancy detector (spec.md
// §4.7): a fixed 19-type vocabulary of findings across the identifier,
// geographic, name, cross-source, and internal axes. Each type carries a
// typed details struct rather than an untyped map (spec.md §9 redesign
// guidance), generalizing the tagged-union shape from the KYC validation
// findings in the teacher repo into one-struct-per-type.
package discrepancy

import "github.com/entitymatch/reconciler/internal/model"

// MeiMismatch is details for TypeMEIMismatch.
type MeiMismatch struct{ Extracted, Store string }

func (MeiMismatch) DiscrepancyType() model.DiscrepancyType { return model.TypeMEIMismatch }

// MeiMissingLoanIQ is details for TypeMEIMissingLoanIQ.
type MeiMissingLoanIQ struct{ Extracted string }

func (MeiMissingLoanIQ) DiscrepancyType() model.DiscrepancyType { return model.TypeMEIMissingLoanIQ }

// LeiMismatch is details for TypeLEIMismatch.
type LeiMismatch struct{ Extracted, Store string }

func (LeiMismatch) DiscrepancyType() model.DiscrepancyType { return model.TypeLEIMismatch }

// EinMismatch is details for TypeEINMismatch.
type EinMismatch struct{ Extracted, Store string }

func (EinMismatch) DiscrepancyType() model.DiscrepancyType { return model.TypeEINMismatch }

// DebtDomainIdMismatch is details for TypeDebtDomainIDMismatch.
type DebtDomainIdMismatch struct{ Extracted, Store string }

func (DebtDomainIdMismatch) DiscrepancyType() model.DiscrepancyType {
	return model.TypeDebtDomainIDMismatch
}

// CountryMismatchMeiAddress is details for TypeCountryMismatchMEIAddress.
type CountryMismatchMeiAddress struct{ MeiPrefix, ExtractedCountry string }

func (CountryMismatchMeiAddress) DiscrepancyType() model.DiscrepancyType {
	return model.TypeCountryMismatchMEIAddress
}

// CountryMismatchFormLoanIQ is details for TypeCountryMismatchFormLoanIQ.
type CountryMismatchFormLoanIQ struct{ Extracted, Store string }

func (CountryMismatchFormLoanIQ) DiscrepancyType() model.DiscrepancyType {
	return model.TypeCountryMismatchFormLoanIQ
}

// CountryMismatchTaxLegal is details for TypeCountryMismatchTaxLegal.
type CountryMismatchTaxLegal struct{ Tax, Legal string }

func (CountryMismatchTaxLegal) DiscrepancyType() model.DiscrepancyType {
	return model.TypeCountryMismatchTaxLegal
}

// DbaNotInLoanIQ is details for TypeDBANotInLoanIQ.
type DbaNotInLoanIQ struct{ DBA string }

func (DbaNotInLoanIQ) DiscrepancyType() model.DiscrepancyType { return model.TypeDBANotInLoanIQ }

// FundManagerMismatch is details for TypeFundManagerMismatch.
type FundManagerMismatch struct {
	Extracted, Store string
	Similarity       float64
}

func (FundManagerMismatch) DiscrepancyType() model.DiscrepancyType {
	return model.TypeFundManagerMismatch
}

// FundManagerMissingLoanIQ is details for TypeFundManagerMissingLoanIQ.
type FundManagerMissingLoanIQ struct{ Extracted string }

func (FundManagerMissingLoanIQ) DiscrepancyType() model.DiscrepancyType {
	return model.TypeFundManagerMissingLoanIQ
}

// UnexpectedFundManagerLoanIQ is details for TypeUnexpectedFundManagerLoanIQ.
type UnexpectedFundManagerLoanIQ struct{ Store string }

func (UnexpectedFundManagerLoanIQ) DiscrepancyType() model.DiscrepancyType {
	return model.TypeUnexpectedFundManagerLoanIQ
}

// EINMismatchCrossForm is details for TypeEINMismatchCrossForm.
type EINMismatchCrossForm struct{ Primary, Secondary string }

func (EINMismatchCrossForm) DiscrepancyType() model.DiscrepancyType {
	return model.TypeEINMismatchCrossForm
}

// LegalNameMismatchCrossForm is details for TypeLegalNameMismatchCrossForm.
type LegalNameMismatchCrossForm struct {
	Primary, Secondary string
	Similarity         float64
}

func (LegalNameMismatchCrossForm) DiscrepancyType() model.DiscrepancyType {
	return model.TypeLegalNameMismatchCrossForm
}

// CountryMismatchCrossForm is details for TypeCountryMismatchCrossForm.
type CountryMismatchCrossForm struct{ Primary, Secondary string }

func (CountryMismatchCrossForm) DiscrepancyType() model.DiscrepancyType {
	return model.TypeCountryMismatchCrossForm
}

// MEIMismatchCrossForm is details for TypeMEIMismatchCrossForm.
type MEIMismatchCrossForm struct{ Primary, Secondary string }

func (MEIMismatchCrossForm) DiscrepancyType() model.DiscrepancyType {
	return model.TypeMEIMismatchCrossForm
}

// PotentialDuplicateShortName is details for TypePotentialDuplicateShortName.
type PotentialDuplicateShortName struct {
	ShortName         string
	DuplicateEntityID int64
}

func (PotentialDuplicateShortName) DiscrepancyType() model.DiscrepancyType {
	return model.TypePotentialDuplicateShortName
}

// OrphanedLocationRecord is details for TypeOrphanedLocationRecord.
type OrphanedLocationRecord struct{ EntityID int64 }

func (OrphanedLocationRecord) DiscrepancyType() model.DiscrepancyType {
	return model.TypeOrphanedLocationRecord
}

// InternalCountryMismatch is details for TypeInternalCountryMismatch.
type InternalCountryMismatch struct{ MeiPrefix, Country string }

func (InternalCountryMismatch) DiscrepancyType() model.DiscrepancyType {
	return model.TypeInternalCountryMismatch
}

// EntityTypeMismatch is details for TypeEntityTypeMismatch.
type EntityTypeMismatch struct{ HasExtractionFM, HasCandidateFM bool }

func (EntityTypeMismatch) DiscrepancyType() model.DiscrepancyType {
	return model.TypeEntityTypeMismatch
}
