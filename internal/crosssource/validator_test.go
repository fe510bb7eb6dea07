package crosssource

import (
	"testing"

	"github.com/entitymatch/reconciler/internal/model"
)

func TestValidateEINAgree(t *testing.T) {
	v := New()
	out := v.Validate(
		model.ExtractedEntity{EIN: "12-3456789"},
		model.ExtractedEntity{EIN: "12-3456789"},
		model.StoreEntity{},
	)
	if out.Adjustment != 10 {
		t.Errorf("expected +10 for EIN agreement, got %v", out.Adjustment)
	}
}

func TestValidateEINConflict(t *testing.T) {
	v := New()
	out := v.Validate(
		model.ExtractedEntity{EIN: "12-3456789"},
		model.ExtractedEntity{EIN: "98-7654321"},
		model.StoreEntity{},
	)
	if out.Adjustment != -15 {
		t.Errorf("expected -15 for EIN conflict, got %v", out.Adjustment)
	}
}

func TestValidateCountryAgree(t *testing.T) {
	v := New()
	out := v.Validate(
		model.ExtractedEntity{LegalCountry: "US"},
		model.ExtractedEntity{LegalCountry: "US"},
		model.StoreEntity{},
	)
	if out.Adjustment != 2 {
		t.Errorf("expected +2 for country agreement, got %v", out.Adjustment)
	}
}

func TestValidateComplementaryLEI(t *testing.T) {
	v := New()
	out := v.Validate(
		model.ExtractedEntity{},
		model.ExtractedEntity{LEI: "529900T8BM49AURSDO55"},
		model.StoreEntity{LEI: "529900T8BM49AURSDO55"},
	)
	if out.Adjustment != 15 {
		t.Errorf("expected +15 for complementary LEI, got %v", out.Adjustment)
	}
}
