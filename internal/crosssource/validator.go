// Package crosssource implements the cross-source validator (spec.md
// §4.6): when a secondary tax-form extraction exists, it cross-checks
// EIN, legal name, country, and complementary identifiers between the
// two extractions and the candidate, emitting score adjustments. The
// discrepancies those same disagreements trigger are the discrepancy
// detector's responsibility (spec.md §4.7), kept in one place so every
// discrepancy-producing rule lives in a single closed vocabulary.
package crosssource

import (
	"github.com/entitymatch/reconciler/internal/fuzzy"
	"github.com/entitymatch/reconciler/internal/model"
)

// Validator cross-checks a primary/secondary extraction pair against a
// candidate. It carries no collaborators; all of its inputs are pure
// values.
type Validator struct{}

// New builds a Validator.
func New() *Validator { return &Validator{} }

// Outcome is the sum of score adjustments from one validation pass,
// before clamping (spec.md §4.6).
type Outcome struct {
	Adjustment float64
	Evidence   []string
}

// Validate applies every axis in spec.md §4.6 and sums the adjustments.
func (v *Validator) Validate(primary, secondary model.ExtractedEntity, candidate model.StoreEntity) Outcome {
	var out Outcome
	v.einAxis(primary, secondary, candidate, &out)
	v.legalNameAxis(primary, secondary, candidate, &out)
	v.countryAxis(primary, secondary, &out)
	v.complementaryIdentifierAxis(primary, secondary, candidate, &out)
	return out
}

func (v *Validator) einAxis(primary, secondary model.ExtractedEntity, candidate model.StoreEntity, out *Outcome) {
	switch {
	case primary.EIN != "" && secondary.EIN != "":
		if model.EINsEqual(primary.EIN, secondary.EIN) {
			out.Adjustment += 10
			out.Evidence = append(out.Evidence, "primary and secondary EIN agree")
		} else {
			out.Adjustment -= 15
			out.Evidence = append(out.Evidence, "primary and secondary EIN disagree")
		}
	case secondary.EIN != "" && primary.EIN == "":
		out.Adjustment += 5
		out.Evidence = append(out.Evidence, "secondary extraction supplies EIN")
		if candidate.EIN != "" {
			if model.EINsEqual(candidate.EIN, secondary.EIN) {
				out.Adjustment += 10
				out.Evidence = append(out.Evidence, "candidate EIN matches secondary EIN")
			} else {
				out.Adjustment -= 10
				out.Evidence = append(out.Evidence, "candidate EIN disagrees with secondary extraction EIN")
			}
		}
	}
}

func (v *Validator) legalNameAxis(primary, secondary model.ExtractedEntity, candidate model.StoreEntity, out *Outcome) {
	if secondary.LegalName == "" || primary.LegalName == "" {
		return
	}
	jw := fuzzy.JaroWinkler(primary.LegalName, secondary.LegalName)
	switch {
	case jw > 0.9:
		out.Adjustment += 8
		out.Evidence = append(out.Evidence, "primary/secondary legal names closely agree")
	case jw > 0.8:
		out.Adjustment += 3
		out.Evidence = append(out.Evidence, "primary/secondary legal names loosely agree")
	case jw < 0.7:
		out.Adjustment -= 10
		out.Evidence = append(out.Evidence, "primary and secondary extraction legal names disagree")
	}

	if candidate.FullName != "" {
		if taxJW := fuzzy.JaroWinkler(secondary.LegalName, candidate.FullName); taxJW > 0.85 {
			out.Adjustment += 5
			out.Evidence = append(out.Evidence, "secondary extraction legal name matches candidate full name")
		}
	}
}

func (v *Validator) countryAxis(primary, secondary model.ExtractedEntity, out *Outcome) {
	if primary.LegalCountry == "" || secondary.LegalCountry == "" {
		return
	}
	if primary.LegalCountry != secondary.LegalCountry {
		out.Adjustment -= 5
		out.Evidence = append(out.Evidence, "primary and secondary extraction countries disagree")
		return
	}
	out.Adjustment += 2
	out.Evidence = append(out.Evidence, "primary/secondary countries agree")
}

func (v *Validator) complementaryIdentifierAxis(primary, secondary model.ExtractedEntity, candidate model.StoreEntity, out *Outcome) {
	if primary.LEI == "" && secondary.LEI != "" && candidate.LEI == secondary.LEI && candidate.LEI != "" {
		out.Adjustment += 15
		out.Evidence = append(out.Evidence, "secondary extraction's LEI corroborates candidate, absent from primary")
	}
	if primary.DebtDomainID == "" && secondary.DebtDomainID != "" && candidate.DebtDomainID == secondary.DebtDomainID && candidate.DebtDomainID != "" {
		out.Adjustment += 10
		out.Evidence = append(out.Evidence, "secondary extraction's DebtDomainID corroborates candidate, absent from primary")
	}
}
