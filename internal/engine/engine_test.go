package engine

import (
	"context"
	"testing"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/store"
)

func newTestEngine(rows []model.StoreEntity) *Engine {
	return New(store.NewMemoryStore(rows), config.DefaultThresholds(), nil)
}

// Scenario 1: perfect MEI match (spec.md §8).
func TestScenarioPerfectMEI(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", MEI: "US12345678", CountryCode: "US"},
	})
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", MEI: "US12345678", LegalCountry: "US",
	}, nil)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	top := results[0]
	if top.Candidate.EntityID != 1 {
		t.Fatalf("expected entity 1, got %d", top.Candidate.EntityID)
	}
	if top.Score() < 85 {
		t.Errorf("expected score >= 85, got %v", top.Score())
	}
	if top.Strategy != model.StrategyIdentifier {
		t.Errorf("expected IDENTIFIER strategy, got %v", top.Strategy)
	}
	if top.HasCriticalDiscrepancy() {
		t.Errorf("expected no CRITICAL discrepancies")
	}
	if Decide(results, config.DefaultThresholds()) != model.DecisionMatch {
		t.Errorf("expected MATCH decision, got %v", Decide(results, config.DefaultThresholds()))
	}
}

// Scenario 2: two identifiers corroborate (spec.md §8).
func TestScenarioTwoIdentifiersCorroborate(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", MEI: "US12345678", LEI: "529900T8BM49AURSDO55", CountryCode: "US"},
	})
	withoutLEI := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", MEI: "US12345678", LegalCountry: "US",
	}, nil)
	withLEI := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", MEI: "US12345678", LEI: "529900T8BM49AURSDO55", LegalCountry: "US",
	}, nil)

	// spec.md §8: adding a higher-priority identifier never decreases the
	// top candidate's score (not necessarily a strict increase — both can
	// already be clamped at 100).
	if withLEI[0].Score() < withoutLEI[0].Score() {
		t.Errorf("expected corroborating LEI to never decrease score: without=%v with=%v", withoutLEI[0].Score(), withLEI[0].Score())
	}
	if withLEI[0].Score() > 100 {
		t.Errorf("score exceeded 100: %v", withLEI[0].Score())
	}
}

// Scenario 3: identifier mismatch drives NO_MATCH (spec.md §8).
func TestScenarioIdentifierMismatch(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", MEI: "US87654321"},
	})
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", MEI: "US12345678",
	}, nil)
	if len(results) == 0 {
		t.Fatal("expected at least one candidate from the name match")
	}
	top := results[0]
	foundCritical := false
	for _, d := range top.Discrepancies {
		if d.Type == model.TypeMEIMismatch && d.Severity == model.SeverityCritical {
			foundCritical = true
		}
	}
	if !foundCritical {
		t.Errorf("expected a CRITICAL MEI_MISMATCH discrepancy, got %+v", top.Discrepancies)
	}
}

// Scenario 4: composite managed-fund match (spec.md §8).
func TestScenarioCompositeManagedFund(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "ABC Pension Plan", FundManagerField: "GSAM"},
	})
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "ABC Pension Plan", FundManager: "Goldman Sachs Asset Management",
	}, nil)
	if len(results) == 0 {
		t.Fatal("expected a composite match")
	}
	if results[0].Score() < 85 {
		t.Errorf("expected score >= 85 for composite managed-fund match, got %v", results[0].Score())
	}
	if Decide(results, config.DefaultThresholds()) != model.DecisionMatch {
		t.Errorf("expected MATCH decision, got %v", Decide(results, config.DefaultThresholds()))
	}
}

// Scenario 5: cross-form EIN conflict forces MANUAL_REVIEW (spec.md §8).
func TestScenarioCrossFormEINConflict(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", EIN: "12-3456789"},
	})
	secondary := model.ExtractedEntity{LegalName: "Acme Fund", EIN: "98-7654321"}
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", EIN: "12-3456789",
	}, &secondary)

	if len(results) == 0 {
		t.Fatal("expected a candidate")
	}
	top := results[0]
	foundCritical := false
	for _, d := range top.Discrepancies {
		if d.Type == model.TypeEINMismatchCrossForm && d.Severity == model.SeverityCritical {
			foundCritical = true
		}
	}
	if !foundCritical {
		t.Errorf("expected CRITICAL EIN_MISMATCH_CROSS_FORM, got %+v", top.Discrepancies)
	}
	if Decide(results, config.DefaultThresholds()) != model.DecisionManualReview {
		t.Errorf("expected MANUAL_REVIEW, got %v", Decide(results, config.DefaultThresholds()))
	}
}

// Scenario 6: duplicate short names surface potential duplicates (spec.md §8).
func TestScenarioDuplicateDetection(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Corp", ShortName: "ACME", MEI: "US12345678"},
		{EntityID: 2, FullName: "Acme Corp.", ShortName: "ACME."},
	})
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Corp", MEI: "US12345678",
	}, nil)
	if len(results) == 0 {
		t.Fatal("expected a candidate")
	}
	top := results[0]
	if top.Candidate.EntityID != 1 {
		t.Fatalf("expected the higher-scoring entity 1 to win, got %d", top.Candidate.EntityID)
	}
	if len(top.PotentialDuplicates) != 1 || top.PotentialDuplicates[0].EntityID != 2 {
		t.Errorf("expected entity 2 recorded as a potential duplicate, got %+v", top.PotentialDuplicates)
	}
	foundDupDiscrepancy := false
	for _, d := range top.Discrepancies {
		if d.Type == model.TypePotentialDuplicateShortName && d.Severity == model.SeverityLow {
			foundDupDiscrepancy = true
		}
	}
	if !foundDupDiscrepancy {
		t.Errorf("expected LOW POTENTIAL_DUPLICATE_SHORT_NAME discrepancy, got %+v", top.Discrepancies)
	}
}

func TestEmptyCandidateListYieldsNoMatchDecision(t *testing.T) {
	e := newTestEngine(nil)
	results := e.FindMatches(context.Background(), model.ExtractedEntity{LegalName: "Nobody Here"}, nil)
	if Decide(results, config.DefaultThresholds()) != model.DecisionNoMatch {
		t.Errorf("expected NO_MATCH for an empty candidate list, got %v", Decide(results, config.DefaultThresholds()))
	}
}

func TestNoDuplicateEntityIDsInTopK(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", MEI: "US12345678"},
	})
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", MEI: "US12345678",
	}, nil)
	seen := make(map[int64]bool)
	for _, r := range results {
		if seen[r.Candidate.EntityID] {
			t.Fatalf("duplicate entity_id %d in top-K", r.Candidate.EntityID)
		}
		seen[r.Candidate.EntityID] = true
	}
}

func TestScoreAlwaysInRange(t *testing.T) {
	e := newTestEngine([]model.StoreEntity{
		{EntityID: 1, FullName: "Acme Fund", MEI: "US12345678", LEI: "529900T8BM49AURSDO55", EIN: "12-3456789"},
	})
	results := e.FindMatches(context.Background(), model.ExtractedEntity{
		LegalName: "Acme Fund", MEI: "US12345678", LEI: "529900T8BM49AURSDO55", EIN: "12-3456789",
	}, nil)
	for _, r := range results {
		if r.Score() < 0 || r.Score() > 100 {
			t.Errorf("score out of range: %v", r.Score())
		}
		if r.ConfidenceBand(config.DefaultThresholds()) != model.BandForScore(r.Score(), config.DefaultThresholds()) {
			t.Errorf("confidence band is not a pure function of score")
		}
	}
}
