package identifier

import (
	"context"
	"testing"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/store"
)

func TestSeedMEIOnly(t *testing.T) {
	rows := []model.StoreEntity{{EntityID: 1, FullName: "Acme Fund", MEI: "US12345678"}}
	m := New(store.NewMemoryStore(rows), config.DefaultThresholds())

	results := m.Seed(context.Background(), model.ExtractedEntity{MEI: "US12345678"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score() != 40 {
		t.Errorf("expected base MEI score 40, got %v", results[0].Score())
	}
}

func TestSeedCorroboration(t *testing.T) {
	rows := []model.StoreEntity{{EntityID: 1, FullName: "Acme Fund", MEI: "US12345678", LEI: "529900T8BM49AURSDO55"}}
	m := New(store.NewMemoryStore(rows), config.DefaultThresholds())

	results := m.Seed(context.Background(), model.ExtractedEntity{
		MEI: "US12345678",
		LEI: "529900T8BM49AURSDO55",
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// 40 (MEI base) + 15 (LEI corroboration boost)
	if got := results[0].Score(); got != 55 {
		t.Errorf("expected corroborated score 55, got %v", got)
	}
}

func TestSeedNoIdentifiers(t *testing.T) {
	m := New(store.NewMemoryStore(nil), config.DefaultThresholds())
	results := m.Seed(context.Background(), model.ExtractedEntity{})
	if len(results) != 0 {
		t.Errorf("expected no results with no identifiers, got %d", len(results))
	}
}

func TestSeedDistinctCandidatesFromDifferentAxes(t *testing.T) {
	rows := []model.StoreEntity{
		{EntityID: 1, MEI: "US12345678"},
		{EntityID: 2, LEI: "529900T8BM49AURSDO55"},
	}
	m := New(store.NewMemoryStore(rows), config.DefaultThresholds())
	results := m.Seed(context.Background(), model.ExtractedEntity{
		MEI: "US12345678",
		LEI: "529900T8BM49AURSDO55",
	})
	if len(results) != 2 {
		t.Fatalf("expected 2 distinct candidates, got %d", len(results))
	}
}
