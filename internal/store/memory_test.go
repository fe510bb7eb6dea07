package store

import (
	"context"
	"testing"

	"github.com/entitymatch/reconciler/internal/model"
)

func seedRows() []model.StoreEntity {
	return []model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", ShortName: "ACME", MEI: "US12345678", CountryCode: "US"},
		{EntityID: 2, FullName: "Beta Holdings", ShortName: "BETA", EmailDomain: "blackrock.com"},
		{EntityID: 3, FullName: "Acme.", ShortName: "ACME.", CountryCode: "US"},
	}
}

func TestMemoryStoreFindByMEI(t *testing.T) {
	s := NewMemoryStore(seedRows())
	rows, err := s.FindByMEI(context.Background(), "US12345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].EntityID != 1 {
		t.Errorf("FindByMEI = %+v, want entity 1", rows)
	}
}

func TestMemoryStoreFindByEINHyphenInsensitive(t *testing.T) {
	rows := []model.StoreEntity{{EntityID: 5, EIN: "12-3456789"}}
	s := NewMemoryStore(rows)
	got, err := s.FindByEIN(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("FindByEIN hyphen-insensitive match failed: %+v", got)
	}
}

func TestMemoryStoreFindByCleanedShortName(t *testing.T) {
	s := NewMemoryStore(seedRows())
	rows, err := s.FindByCleanedShortName(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected both ACME and ACME. to match cleaned short name, got %d", len(rows))
	}
}

func TestMemoryStoreFindByEmailDomain(t *testing.T) {
	s := NewMemoryStore(seedRows())
	rows, err := s.FindByEmailDomain(context.Background(), "blackrock.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].EntityID != 2 {
		t.Errorf("FindByEmailDomain = %+v, want entity 2", rows)
	}
}

func TestMemoryStoreFindByIDMissing(t *testing.T) {
	s := NewMemoryStore(seedRows())
	got, err := s.FindByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("FindByID(999) = %+v, want nil", got)
	}
}
