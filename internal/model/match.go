package model

import (
	"fmt"
	"strings"

	"github.com/entitymatch/reconciler/internal/config"
)

// MatchStrategy names which pipeline stage seeded a candidate.
type MatchStrategy string

const (
	StrategyIdentifier MatchStrategy = "IDENTIFIER"
	StrategyFuzzyName  MatchStrategy = "FUZZY_NAME"
	StrategyEmailDomain MatchStrategy = "EMAIL_DOMAIN"
)

// ComponentKind names one contributor to a candidate's score. Spec.md §9
// calls for a typed replacement of the source's open-ended string→number
// mapping; the identifier-axis kinds are still distinguished as
// "<id>_match" vs "<id>_boost" (the two concepts the source conflated),
// just carried as distinct typed constants instead of ad hoc strings.
type ComponentKind string

const (
	ComponentMEIMatch          ComponentKind = "mei_match"
	ComponentMEIBoost          ComponentKind = "mei_boost"
	ComponentLEIMatch          ComponentKind = "lei_match"
	ComponentLEIBoost          ComponentKind = "lei_boost"
	ComponentEINMatch          ComponentKind = "ein_match"
	ComponentEINBoost          ComponentKind = "ein_boost"
	ComponentDebtDomainMatch   ComponentKind = "debt_domain_id_match"
	ComponentDebtDomainBoost   ComponentKind = "debt_domain_id_boost"
	ComponentLegalNameFuzzy    ComponentKind = "legal_name_fuzzy"
	ComponentFundManagerFuzzy  ComponentKind = "fund_manager_fuzzy"
	ComponentEmailDomainBoost  ComponentKind = "email_domain_boost"
	ComponentTaxFormValidation ComponentKind = "tax_form_validation"
)

// IdentifierKind names one of the four identifier axes searched in
// priority order by the identifier matcher.
type IdentifierKind string

const (
	IdentifierMEI          IdentifierKind = "mei"
	IdentifierLEI          IdentifierKind = "lei"
	IdentifierEIN          IdentifierKind = "ein"
	IdentifierDebtDomainID IdentifierKind = "debt_domain_id"
)

// DisplayName returns the uppercase ID_TYPE token used in evidence
// strings (spec.md §4.3), e.g. "DEBT_DOMAIN_ID" for IdentifierDebtDomainID.
func (k IdentifierKind) DisplayName() string {
	return strings.ToUpper(string(k))
}

// MatchComponent returns the "<id>_match" ComponentKind for an identifier axis.
func (k IdentifierKind) MatchComponent() ComponentKind {
	return ComponentKind(fmt.Sprintf("%s_match", k))
}

// BoostComponent returns the "<id>_boost" ComponentKind for an identifier axis.
func (k IdentifierKind) BoostComponent() ComponentKind {
	return ComponentKind(fmt.Sprintf("%s_boost", k))
}

// BaseScore is the seeding score for the first identifier of this kind to
// produce matches (spec.md §4.3): MEI 40, LEI 35, EIN 30, DebtDomainID 25,
// read from t so tests can inject alternate tuning.
func (k IdentifierKind) BaseScore(t config.Thresholds) float64 {
	switch k {
	case IdentifierMEI:
		return t.MEIBaseScore
	case IdentifierLEI:
		return t.LEIBaseScore
	case IdentifierEIN:
		return t.EINBaseScore
	case IdentifierDebtDomainID:
		return t.DebtDomainIDBaseScore
	default:
		return 0
	}
}

// CorroborationBoost is the score added when a lower-priority identifier
// confirms an already-seeded candidate (spec.md §4.3): MEI 20, LEI 15, EIN 10.
// DebtDomainID never corroborates since it is lowest priority.
func (k IdentifierKind) CorroborationBoost(t config.Thresholds) float64 {
	switch k {
	case IdentifierMEI:
		return t.MEICorroborationBoost
	case IdentifierLEI:
		return t.LEICorroborationBoost
	case IdentifierEIN:
		return t.EINCorroborationBoost
	default:
		return 0
	}
}

// ConfidenceBand is the categorical bucket derived from a final score.
type ConfidenceBand string

const (
	BandHigh       ConfidenceBand = "HIGH"
	BandMediumHigh ConfidenceBand = "MEDIUM_HIGH"
	BandMedium     ConfidenceBand = "MEDIUM"
	BandReview     ConfidenceBand = "REVIEW"
)

// BandForScore is the pure function from a clamped [0,100] score to its
// confidence band (spec.md §3, §9 — a derived accessor, never stored).
func BandForScore(score float64, t config.Thresholds) ConfidenceBand {
	switch {
	case score >= t.BandHighMin:
		return BandHigh
	case score >= t.BandMediumHighMin:
		return BandMediumHigh
	case score >= t.BandMediumMin:
		return BandMedium
	default:
		return BandReview
	}
}

// MatchResult is one ranked candidate in a reconciliation run.
type MatchResult struct {
	Candidate        StoreEntity
	score            float64
	Composite        bool
	Evidence         []string
	Discrepancies    []Discrepancy
	ScoreComponents  map[ComponentKind]float64
	Strategy         MatchStrategy
	PotentialDuplicates []StoreEntity
}

// NewMatchResult builds a zero-score result for a candidate.
func NewMatchResult(candidate StoreEntity, strategy MatchStrategy) *MatchResult {
	return &MatchResult{
		Candidate:       candidate,
		ScoreComponents: make(map[ComponentKind]float64),
		Strategy:        strategy,
	}
}

// Score returns the current clamped [0,100] score.
func (m *MatchResult) Score() float64 { return m.score }

// SetScore sets the score, clamping to [0,100]. This is the only way to
// mutate the score so that the confidence band (a derived function of
// score) can never go stale — direct field writes are not possible since
// score is unexported (spec.md §9).
func (m *MatchResult) SetScore(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	m.score = v
}

// AddScore adjusts the score by delta, clamping the result.
func (m *MatchResult) AddScore(delta float64) {
	m.SetScore(m.score + delta)
}

// ConfidenceBand derives the confidence band from the current score.
func (m *MatchResult) ConfidenceBand(t config.Thresholds) ConfidenceBand {
	return BandForScore(m.score, t)
}

// SetComponent records a score-component contribution. It does not touch
// the running score directly; the confidence scorer (spec.md §4.9) reads
// the components map back out when it assembles the final score.
func (m *MatchResult) SetComponent(kind ComponentKind, value float64) {
	m.ScoreComponents[kind] = value
}

// HasCriticalDiscrepancy reports whether any attached discrepancy is
// CRITICAL severity.
func (m *MatchResult) HasCriticalDiscrepancy() bool {
	for _, d := range m.Discrepancies {
		if d.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// AddEvidence appends a human-readable evidence line.
func (m *MatchResult) AddEvidence(format string, args ...any) {
	m.Evidence = append(m.Evidence, fmt.Sprintf(format, args...))
}
