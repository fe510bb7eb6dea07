// Package scoring implements the confidence scorer (spec.md §4.9):
// assembling a candidate's final score from its score-components map and
// attached discrepancies.
package scoring

import (
	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/fuzzy"
	"github.com/entitymatch/reconciler/internal/model"
)

// Scorer finalizes a MatchResult's score from its accumulated components.
type Scorer struct {
	Thresholds config.Thresholds
}

// New builds a Scorer with the given thresholds.
func New(t config.Thresholds) *Scorer { return &Scorer{Thresholds: t} }

// Finalize applies spec.md §4.9's nine-step assembly and sets the
// result's score, clamped to [0,100]. composite is nil when no fuzzy
// name scoring ran for this candidate (a pure identifier match).
func (s *Scorer) Finalize(result *model.MatchResult, composite *fuzzy.CompositeResult, hasPotentialDuplicates, geographicConsistent bool) {
	total := identifierComponent(result)
	total += s.nameComponent(composite)

	if boost, ok := result.ScoreComponents[model.ComponentEmailDomainBoost]; ok {
		total += boost
	}
	if geographicConsistent {
		total += 10
	}

	total -= s.penaltyTotal(result.Discrepancies)

	if tax, ok := result.ScoreComponents[model.ComponentTaxFormValidation]; ok {
		total += tax
	}

	if n := identifierAxisCount(result); n > 1 {
		total += 5 * float64(n-1)
	}

	if hasPotentialDuplicates {
		total -= 5
	}

	result.SetScore(total)
}

// identifierComponent is step 1 of spec.md §4.9: the sum of whichever
// *_match component the identifier matcher recorded (exactly one, the
// highest-priority axis that seeded the candidate) plus any *_boost
// components later corroborating axes added — read back from the result
// itself rather than re-deriving the base scores, since the identifier
// matcher already applied config.Thresholds (and any MEI confidence
// demotion) when it set them.
func identifierComponent(result *model.MatchResult) float64 {
	var total float64
	for _, kind := range []model.ComponentKind{
		model.ComponentMEIMatch, model.ComponentMEIBoost,
		model.ComponentLEIMatch, model.ComponentLEIBoost,
		model.ComponentEINMatch, model.ComponentEINBoost,
		model.ComponentDebtDomainMatch, model.ComponentDebtDomainBoost,
	} {
		if v, ok := result.ScoreComponents[kind]; ok {
			total += v
		}
	}
	return total
}

// nameComponent is step 2 of spec.md §4.9: the weighted composite from
// §4.4 — re-derived here per its own override rule (if legal is below
// the legal-name floor or fm < 0.6 the composite falls back to
// min(legal,fm)·0.5) — carried onto the confidence scorer's 0-100 point
// scale the same way §4.4 itself reports it ("Result carries score =
// 100·final"); the fm weight of 0.3 inside the composite formula is what
// spec.md means by "scaled by 0.3", not a second multiplication on top.
func (s *Scorer) nameComponent(composite *fuzzy.CompositeResult) float64 {
	if composite == nil {
		return 0
	}
	value := composite.Final
	if composite.Legal < s.Thresholds.FuzzyNameCandidateFloor/100 || composite.FM < 0.6 {
		value = minF(composite.Legal, composite.FM) * 0.5
	}
	return value * 100
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func has(result *model.MatchResult, kind model.ComponentKind) bool {
	_, ok := result.ScoreComponents[kind]
	return ok
}

func (s *Scorer) penaltyTotal(discrepancies []model.Discrepancy) float64 {
	var sum int
	for _, d := range discrepancies {
		sum += -d.Severity.Penalty(s.Thresholds) // Penalty() is negative; sum accumulates positive magnitude.
	}
	if sum > 50 {
		sum = 50
	}
	return float64(sum)
}

// identifierAxisCount counts distinct identifier axes that contributed to
// this result, whether as the anchoring match (the highest-priority axis,
// recorded as "<id>_match") or as a later corroborating axis (recorded as
// "<id>_boost" per internal/identifier's Seed) — both mean the axis
// matched, per spec.md §4.9 step 7.
func identifierAxisCount(result *model.MatchResult) int {
	axisPairs := [][2]model.ComponentKind{
		{model.ComponentMEIMatch, model.ComponentMEIBoost},
		{model.ComponentLEIMatch, model.ComponentLEIBoost},
		{model.ComponentEINMatch, model.ComponentEINBoost},
		{model.ComponentDebtDomainMatch, model.ComponentDebtDomainBoost},
	}
	count := 0
	for _, pair := range axisPairs {
		if has(result, pair[0]) || has(result, pair[1]) {
			count++
		}
	}
	return count
}
