package scoring

import (
	"testing"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/fuzzy"
	"github.com/entitymatch/reconciler/internal/model"
)

func newTestScorer() *Scorer { return New(config.DefaultThresholds()) }

func TestFinalizeIdentifierOnly(t *testing.T) {
	result := model.NewMatchResult(model.StoreEntity{EntityID: 1}, model.StrategyIdentifier)
	result.SetComponent(model.ComponentMEIMatch, 40)
	newTestScorer().Finalize(result, nil, false, true)
	if got := result.Score(); got != 50 {
		t.Errorf("expected 40 (mei) + 10 (geo) = 50, got %v", got)
	}
}

func TestFinalizeWithDiscrepancyPenalty(t *testing.T) {
	result := model.NewMatchResult(model.StoreEntity{EntityID: 1}, model.StrategyIdentifier)
	result.SetComponent(model.ComponentMEIMatch, 40)
	result.Discrepancies = []model.Discrepancy{{Severity: model.SeverityCritical}}
	newTestScorer().Finalize(result, nil, false, false)
	if got := result.Score(); got != 15 {
		t.Errorf("expected 40 - 25 (critical) = 15, got %v", got)
	}
}

func TestFinalizeClampsToZero(t *testing.T) {
	result := model.NewMatchResult(model.StoreEntity{EntityID: 1}, model.StrategyIdentifier)
	result.Discrepancies = []model.Discrepancy{
		{Severity: model.SeverityCritical}, {Severity: model.SeverityCritical}, {Severity: model.SeverityCritical},
	}
	newTestScorer().Finalize(result, nil, false, false)
	if got := result.Score(); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
}

func TestFinalizeMultiIdentifierBonus(t *testing.T) {
	result := model.NewMatchResult(model.StoreEntity{EntityID: 1}, model.StrategyIdentifier)
	result.SetComponent(model.ComponentMEIMatch, 40)
	result.SetComponent(model.ComponentLEIBoost, 15) // LEI corroborates the MEI-anchored match
	newTestScorer().Finalize(result, nil, false, false)
	// 40 (mei base) + 15 (lei corroboration boost) + 5 (bonus for 2nd axis matched)
	if got := result.Score(); got != 60 {
		t.Errorf("expected 60, got %v", got)
	}
}

func TestFinalizeDuplicatePenalty(t *testing.T) {
	result := model.NewMatchResult(model.StoreEntity{EntityID: 1}, model.StrategyIdentifier)
	result.SetComponent(model.ComponentMEIMatch, 40)
	newTestScorer().Finalize(result, nil, true, false)
	if got := result.Score(); got != 35 {
		t.Errorf("expected 40 - 5 (duplicate) = 35, got %v", got)
	}
}

func TestNameComponentStandalone(t *testing.T) {
	result := model.NewMatchResult(model.StoreEntity{EntityID: 1}, model.StrategyFuzzyName)
	composite := fuzzy.Composite(1.0, false, false, 0, config.DefaultThresholds())
	newTestScorer().Finalize(result, &composite, false, false)
	if got := result.Score(); got != 100 {
		t.Errorf("expected an exact standalone name match to reach the full 100, got %v", got)
	}
}
