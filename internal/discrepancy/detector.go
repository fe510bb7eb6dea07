package discrepancy

import (
	"strings"

	"github.com/entitymatch/reconciler/internal/fuzzy"
	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/normalize"
)

// Detector emits discrepancies across the identifier, geographic, name,
// cross-source, and internal axes (spec.md §4.7). It carries no
// collaborators; every check is a pure function of its inputs.
type Detector struct{}

// New builds a Detector.
func New() *Detector { return &Detector{} }

// DetectPrimary runs the identifier, geographic, and name axis checks for
// one (extracted, candidate) pair.
func (d *Detector) DetectPrimary(extracted model.ExtractedEntity, candidate model.StoreEntity) []model.Discrepancy {
	var out []model.Discrepancy
	out = append(out, d.identifierAxis(extracted, candidate)...)
	out = append(out, d.geographicAxis(extracted, candidate)...)
	out = append(out, d.nameAxis(extracted, candidate)...)
	return out
}

func (d *Detector) identifierAxis(e model.ExtractedEntity, c model.StoreEntity) []model.Discrepancy {
	var out []model.Discrepancy

	if e.MEI != "" && c.MEI != "" && e.MEI != c.MEI {
		out = append(out, model.Discrepancy{
			Type: model.TypeMEIMismatch, Severity: model.SeverityCritical, Source: model.SourceIdentifierCheck,
			Description: "extracted MEI disagrees with candidate MEI",
			Details:     MeiMismatch{Extracted: e.MEI, Store: c.MEI},
		})
	}
	if e.MEI != "" && c.MEI == "" {
		out = append(out, model.Discrepancy{
			Type: model.TypeMEIMissingLoanIQ, Severity: model.SeverityHigh, Source: model.SourceIdentifierCheck,
			Description: "extracted MEI present, candidate has none",
			Details:     MeiMissingLoanIQ{Extracted: e.MEI},
		})
	}
	if e.LEI != "" && c.LEI != "" && e.LEI != c.LEI {
		out = append(out, model.Discrepancy{
			Type: model.TypeLEIMismatch, Severity: model.SeverityHigh, Source: model.SourceIdentifierCheck,
			Description: "extracted LEI disagrees with candidate LEI",
			Details:     LeiMismatch{Extracted: e.LEI, Store: c.LEI},
		})
	}
	if e.EIN != "" && c.EIN != "" && !model.EINsEqual(e.EIN, c.EIN) {
		out = append(out, model.Discrepancy{
			Type: model.TypeEINMismatch, Severity: model.SeverityHigh, Source: model.SourceIdentifierCheck,
			Description: "extracted EIN disagrees with candidate EIN",
			Details:     EinMismatch{Extracted: e.EIN, Store: c.EIN},
		})
	}
	if e.DebtDomainID != "" && c.DebtDomainID != "" && e.DebtDomainID != c.DebtDomainID {
		out = append(out, model.Discrepancy{
			Type: model.TypeDebtDomainIDMismatch, Severity: model.SeverityMedium, Source: model.SourceIdentifierCheck,
			Description: "extracted DebtDomainID disagrees with candidate DebtDomainID",
			Details:     DebtDomainIdMismatch{Extracted: e.DebtDomainID, Store: c.DebtDomainID},
		})
	}
	return out
}

func (d *Detector) geographicAxis(e model.ExtractedEntity, c model.StoreEntity) []model.Discrepancy {
	var out []model.Discrepancy

	if e.MEI != "" && e.LegalCountry != "" {
		prefix := model.MEICountryPrefix(e.MEI)
		if prefix != "" && prefix != e.LegalCountry {
			out = append(out, model.Discrepancy{
				Type: model.TypeCountryMismatchMEIAddress, Severity: model.SeverityMedium, Source: model.SourceGeographicCheck,
				Description: "MEI country prefix disagrees with extracted legal country",
				Details:     CountryMismatchMeiAddress{MeiPrefix: prefix, ExtractedCountry: e.LegalCountry},
			})
		}
	}
	if e.LegalCountry != "" && c.CountryCode != "" && e.LegalCountry != c.CountryCode {
		out = append(out, model.Discrepancy{
			Type: model.TypeCountryMismatchFormLoanIQ, Severity: model.SeverityMedium, Source: model.SourceGeographicCheck,
			Description: "extracted country disagrees with candidate country",
			Details:     CountryMismatchFormLoanIQ{Extracted: e.LegalCountry, Store: c.CountryCode},
		})
	}
	if e.TaxCountry != "" && e.LegalCountry != "" && e.TaxCountry != e.LegalCountry {
		out = append(out, model.Discrepancy{
			Type: model.TypeCountryMismatchTaxLegal, Severity: model.SeverityLow, Source: model.SourceGeographicCheck,
			Description: "extracted tax country disagrees with extracted legal country",
			Details:     CountryMismatchTaxLegal{Tax: e.TaxCountry, Legal: e.LegalCountry},
		})
	}
	return out
}

func (d *Detector) nameAxis(e model.ExtractedEntity, c model.StoreEntity) []model.Discrepancy {
	var out []model.Discrepancy

	if e.DBA != "" && !hasDBAMarker(c.FullName) {
		out = append(out, model.Discrepancy{
			Type: model.TypeDBANotInLoanIQ, Severity: model.SeverityLow, Source: model.SourceNameCheck,
			Description: "extracted DBA has no corresponding marker in candidate name",
			Details:     DbaNotInLoanIQ{DBA: e.DBA},
		})
	}

	switch {
	case e.HasFundManager() && c.HasFundManagerField():
		sim := fuzzy.JaroWinkler(normalize.FundManager(e.FundManager), normalize.FundManager(c.FundManagerField))
		if sim < 0.7 {
			out = append(out, model.Discrepancy{
				Type: model.TypeFundManagerMismatch, Severity: model.SeverityMedium, Source: model.SourceNameCheck,
				Description: "extracted fund manager disagrees with candidate fund manager field",
				Details:     FundManagerMismatch{Extracted: e.FundManager, Store: c.FundManagerField, Similarity: sim},
			})
		}
	case e.HasFundManager() && !c.HasFundManagerField():
		out = append(out, model.Discrepancy{
			Type: model.TypeFundManagerMissingLoanIQ, Severity: model.SeverityMedium, Source: model.SourceNameCheck,
			Description: "extracted fund manager present, candidate has none",
			Details:     FundManagerMissingLoanIQ{Extracted: e.FundManager},
		})
	case !e.HasFundManager() && c.HasFundManagerField():
		out = append(out, model.Discrepancy{
			Type: model.TypeUnexpectedFundManagerLoanIQ, Severity: model.SeverityMedium, Source: model.SourceNameCheck,
			Description: "candidate has a fund manager field, extraction carries none",
			Details:     UnexpectedFundManagerLoanIQ{Store: c.FundManagerField},
		})
	}
	return out
}

func hasDBAMarker(name string) bool {
	u := strings.ToUpper(name)
	return strings.Contains(u, "DBA") || strings.Contains(u, "D/B/A") || strings.Contains(u, "D.B.A")
}

// DetectCrossSource runs the cross-source axis checks (spec.md §4.7) when
// a secondary extraction exists.
func (d *Detector) DetectCrossSource(primary, secondary model.ExtractedEntity) []model.Discrepancy {
	var out []model.Discrepancy

	if primary.EIN != "" && secondary.EIN != "" && !model.EINsEqual(primary.EIN, secondary.EIN) {
		out = append(out, model.Discrepancy{
			Type: model.TypeEINMismatchCrossForm, Severity: model.SeverityCritical, Source: model.SourceCrossSourceCheck,
			Description: "primary and secondary extraction EIN disagree",
			Details:     EINMismatchCrossForm{Primary: primary.EIN, Secondary: secondary.EIN},
		})
	}
	if primary.LegalName != "" && secondary.LegalName != "" {
		sim := fuzzy.JaroWinkler(primary.LegalName, secondary.LegalName)
		if sim < 0.85 {
			out = append(out, model.Discrepancy{
				Type: model.TypeLegalNameMismatchCrossForm, Severity: model.SeverityHigh, Source: model.SourceCrossSourceCheck,
				Description: "primary and secondary extraction legal names disagree",
				Details:     LegalNameMismatchCrossForm{Primary: primary.LegalName, Secondary: secondary.LegalName, Similarity: sim},
			})
		}
	}
	if primary.LegalCountry != "" && secondary.LegalCountry != "" && primary.LegalCountry != secondary.LegalCountry {
		out = append(out, model.Discrepancy{
			Type: model.TypeCountryMismatchCrossForm, Severity: model.SeverityMedium, Source: model.SourceCrossSourceCheck,
			Description: "primary and secondary extraction countries disagree",
			Details:     CountryMismatchCrossForm{Primary: primary.LegalCountry, Secondary: secondary.LegalCountry},
		})
	}
	if primary.MEI != "" && secondary.MEI != "" && primary.MEI != secondary.MEI {
		out = append(out, model.Discrepancy{
			Type: model.TypeMEIMismatchCrossForm, Severity: model.SeverityCritical, Source: model.SourceCrossSourceCheck,
			Description: "primary and secondary extraction MEI disagree",
			Details:     MEIMismatchCrossForm{Primary: primary.MEI, Secondary: secondary.MEI},
		})
	}
	return out
}

// DetectInternal runs the internal axis checks against a candidate alone
// (spec.md §4.7): orphaned location records and MEI/country self-
// consistency, independent of any extraction.
func (d *Detector) DetectInternal(c model.StoreEntity) []model.Discrepancy {
	var out []model.Discrepancy

	if c.IsLocation && c.ParentCustomerID == nil {
		out = append(out, model.Discrepancy{
			Type: model.TypeOrphanedLocationRecord, Severity: model.SeverityMedium, Source: model.SourceInternalCheck,
			Description: "location sub-entity has no parent customer id",
			Details:     OrphanedLocationRecord{EntityID: c.EntityID},
		})
	}
	if c.MEI != "" && c.CountryCode != "" {
		prefix := model.MEICountryPrefix(c.MEI)
		if prefix != "" && prefix != c.CountryCode {
			out = append(out, model.Discrepancy{
				Type: model.TypeInternalCountryMismatch, Severity: model.SeverityMedium, Source: model.SourceInternalCheck,
				Description: "candidate MEI country prefix disagrees with candidate country code",
				Details:     InternalCountryMismatch{MeiPrefix: prefix, Country: c.CountryCode},
			})
		}
	}
	return out
}

// DuplicateDiscrepancy builds the POTENTIAL_DUPLICATE_SHORT_NAME finding
// for a duplicate row found by the duplicate detector (spec.md §4.7,
// §4.8). Run strictly after candidate selection (spec.md §9) — callers
// must not re-enter this detector from within a name-candidate query.
func DuplicateDiscrepancy(shortName string, duplicateEntityID int64) model.Discrepancy {
	return model.Discrepancy{
		Type: model.TypePotentialDuplicateShortName, Severity: model.SeverityLow, Source: model.SourceInternalCheck,
		Description: "candidate shares a cleaned short name with another store row",
		Details:     PotentialDuplicateShortName{ShortName: shortName, DuplicateEntityID: duplicateEntityID},
	}
}
