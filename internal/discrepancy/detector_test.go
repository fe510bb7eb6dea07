package discrepancy

import (
	"testing"

	"github.com/entitymatch/reconciler/internal/model"
)

func TestDetectPrimaryMEIMismatch(t *testing.T) {
	d := New()
	found := d.DetectPrimary(
		model.ExtractedEntity{MEI: "US12345678"},
		model.StoreEntity{MEI: "US87654321"},
	)
	if len(found) != 1 || found[0].Type != model.TypeMEIMismatch || found[0].Severity != model.SeverityCritical {
		t.Fatalf("expected one CRITICAL MEI_MISMATCH, got %+v", found)
	}
}

func TestDetectPrimaryMEIMissing(t *testing.T) {
	d := New()
	found := d.DetectPrimary(
		model.ExtractedEntity{MEI: "US12345678"},
		model.StoreEntity{},
	)
	if len(found) != 1 || found[0].Type != model.TypeMEIMissingLoanIQ {
		t.Fatalf("expected MEI_MISSING_LOANIQ, got %+v", found)
	}
}

func TestDetectPrimaryNoDiscrepancyWhenEqual(t *testing.T) {
	d := New()
	found := d.DetectPrimary(
		model.ExtractedEntity{MEI: "US12345678", LegalCountry: "US"},
		model.StoreEntity{MEI: "US12345678", CountryCode: "US"},
	)
	if len(found) != 0 {
		t.Fatalf("expected no discrepancies, got %+v", found)
	}
}

func TestDetectPrimaryFundManagerMissing(t *testing.T) {
	d := New()
	found := d.DetectPrimary(
		model.ExtractedEntity{FundManager: "Goldman Sachs"},
		model.StoreEntity{},
	)
	hasType := false
	for _, f := range found {
		if f.Type == model.TypeFundManagerMissingLoanIQ {
			hasType = true
		}
	}
	if !hasType {
		t.Fatalf("expected FUND_MANAGER_MISSING_LOANIQ, got %+v", found)
	}
}

func TestDetectCrossSourceEINConflict(t *testing.T) {
	d := New()
	found := d.DetectCrossSource(
		model.ExtractedEntity{EIN: "12-3456789"},
		model.ExtractedEntity{EIN: "98-7654321"},
	)
	if len(found) != 1 || found[0].Type != model.TypeEINMismatchCrossForm || found[0].Severity != model.SeverityCritical {
		t.Fatalf("expected CRITICAL EIN_MISMATCH_CROSS_FORM, got %+v", found)
	}
}

func TestDetectInternalOrphanedLocation(t *testing.T) {
	d := New()
	found := d.DetectInternal(model.StoreEntity{IsLocation: true, ParentCustomerID: nil})
	if len(found) != 1 || found[0].Type != model.TypeOrphanedLocationRecord {
		t.Fatalf("expected ORPHANED_LOCATION_RECORD, got %+v", found)
	}
}

func TestDetectInternalCountryMismatch(t *testing.T) {
	d := New()
	found := d.DetectInternal(model.StoreEntity{MEI: "GB12345678", CountryCode: "US"})
	if len(found) != 1 || found[0].Type != model.TypeInternalCountryMismatch {
		t.Fatalf("expected INTERNAL_COUNTRY_MISMATCH, got %+v", found)
	}
}
