// Package identifier implements the identifier matcher (spec.md §4.3):
// seeding candidates from MEI/LEI/EIN/DebtDomainID in strict priority
// order, applying base scores and corroboration boosts. Structured as a
// struct holding its RecordStore collaborator (spec.md §9 DI guidance)
// rather than a constructor chain.
package identifier

import (
	"context"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/store"
)

// Matcher seeds candidates by identifier lookup.
type Matcher struct {
	Store      store.RecordStore
	Thresholds config.Thresholds
}

// New builds a Matcher over store s with the given thresholds.
func New(s store.RecordStore, t config.Thresholds) *Matcher {
	return &Matcher{Store: s, Thresholds: t}
}

// axis pairs an identifier kind with its lookup function and the
// extracted value to search for.
type axis struct {
	kind  model.IdentifierKind
	value string
	lookup func(ctx context.Context, value string) ([]model.StoreEntity, error)
}

// meiConfidenceFactor implements spec.md §3 invariant (b): an MEI whose
// first two characters are not a recognized ISO-3166-1 country code still
// seeds and corroborates a candidate, but at half confidence.
func meiConfidenceFactor(mei string) float64 {
	if model.ValidCountryCode(model.MEICountryPrefix(mei)) {
		return 1.0
	}
	return 0.5
}

// Seed runs the four identifier axes in priority order (MEI, LEI, EIN,
// DebtDomainID) against extracted, returning one MatchResult per distinct
// candidate entity_id, keyed in first-seen order.
func (m *Matcher) Seed(ctx context.Context, extracted model.ExtractedEntity) []*model.MatchResult {
	axes := []axis{
		{kind: model.IdentifierMEI, value: extracted.MEI, lookup: m.Store.FindByMEI},
		{kind: model.IdentifierLEI, value: extracted.LEI, lookup: m.Store.FindByLEI},
		{kind: model.IdentifierEIN, value: extracted.EIN, lookup: m.Store.FindByEIN},
		{kind: model.IdentifierDebtDomainID, value: extracted.DebtDomainID, lookup: m.Store.FindByDebtDomainID},
	}

	byEntity := make(map[int64]*model.MatchResult)
	var order []int64

	for _, a := range axes {
		if a.value == "" {
			continue
		}
		rows, err := a.lookup(ctx, a.value)
		if err != nil || len(rows) == 0 {
			continue
		}
		factor := 1.0
		if a.kind == model.IdentifierMEI {
			factor = meiConfidenceFactor(a.value)
		}
		for _, row := range rows {
			if existing, ok := byEntity[row.EntityID]; ok {
				boost := a.kind.CorroborationBoost(m.Thresholds) * factor
				existing.SetComponent(a.kind.BoostComponent(), boost)
				existing.AddScore(boost)
				existing.AddEvidence("%s exact match: %s", a.kind.DisplayName(), a.value)
				continue
			}
			result := model.NewMatchResult(row, model.StrategyIdentifier)
			base := a.kind.BaseScore(m.Thresholds) * factor
			result.SetComponent(a.kind.MatchComponent(), base)
			result.SetScore(base)
			result.AddEvidence("%s exact match: %s", a.kind.DisplayName(), a.value)
			if factor < 1.0 {
				result.AddEvidence("MEI country prefix %q not recognized; confidence demoted", model.MEICountryPrefix(a.value))
			}
			if row.IsLocation {
				result.AddEvidence("Match is a location sub-entity")
			}
			byEntity[row.EntityID] = result
			order = append(order, row.EntityID)
		}
	}

	out := make([]*model.MatchResult, 0, len(order))
	for _, id := range order {
		out = append(out, byEntity[id])
	}
	return out
}
