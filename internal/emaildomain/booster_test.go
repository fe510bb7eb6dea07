package emaildomain

import (
	"testing"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/model"
)

func TestApplyDirectRootHit(t *testing.T) {
	r := Apply("blackrock.com", model.StoreEntity{FullName: "BlackRock Advisors LLC"}, config.DefaultThresholds())
	if !r.Applied || r.Boost != 20 {
		t.Errorf("expected direct root hit boost 20, got %+v", r)
	}
}

func TestApplyCorporateFamily(t *testing.T) {
	r := Apply("gs.com", model.StoreEntity{FundManagerField: "Goldman Sachs Asset Management"}, config.DefaultThresholds())
	if !r.Applied || r.Boost != 15 {
		t.Errorf("expected corporate family boost 15, got %+v", r)
	}
}

func TestApplyCcTLDSoftBoost(t *testing.T) {
	r := Apply("example.com", model.StoreEntity{FullName: "Totally Unrelated Co", CountryCode: "US"}, config.DefaultThresholds())
	if !r.Applied || r.Boost != 5 {
		t.Errorf("expected ccTLD soft boost 5, got %+v", r)
	}
}

func TestApplyNoMatch(t *testing.T) {
	r := Apply("example.de", model.StoreEntity{FullName: "Totally Unrelated Co", CountryCode: "US"}, config.DefaultThresholds())
	if r.Applied {
		t.Errorf("expected no boost, got %+v", r)
	}
}

func TestApplyEmptyDomain(t *testing.T) {
	r := Apply("", model.StoreEntity{FullName: "Anything"}, config.DefaultThresholds())
	if r.Applied {
		t.Errorf("expected no boost for empty domain, got %+v", r)
	}
}
