// Package engine implements the matching engine orchestrator (spec.md
// §4.10): the single FindMatches entrypoint that seeds, scores, and
// ranks candidates by running the identifier, fuzzy, email-domain,
// cross-source, discrepancy, duplicate, and scoring collaborators in the
// fixed pipeline order. Structured like the DefaultEntityMatcher in the
// retrieval pack's Nucleus example — one struct holding every
// collaborator as a field, one public FindMatches method — generalized
// onto this domain's identifier/fuzzy/discrepancy pipeline instead of
// rule-based entity resolution.
package engine

import (
	"context"
	"log"
	"sort"

	"github.com/entitymatch/reconciler/internal/config"
	"github.com/entitymatch/reconciler/internal/crosssource"
	"github.com/entitymatch/reconciler/internal/discrepancy"
	"github.com/entitymatch/reconciler/internal/duplicate"
	"github.com/entitymatch/reconciler/internal/emaildomain"
	"github.com/entitymatch/reconciler/internal/fuzzy"
	"github.com/entitymatch/reconciler/internal/identifier"
	"github.com/entitymatch/reconciler/internal/logging"
	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/scoring"
	"github.com/entitymatch/reconciler/internal/store"
)

const debug = false

func debugLog(format string, args ...any) {
	if debug {
		log.Printf("[ENGINE DEBUG] "+format, args...)
	}
}

const maxResults = 5

// Engine is the matching engine orchestrator. Every collaborator is a
// struct field so the engine can be built with fakes in tests (spec.md §9).
type Engine struct {
	Store       store.RecordStore
	Identifier  *identifier.Matcher
	EmailDomain func(emailDomain string, candidate model.StoreEntity, t config.Thresholds) emaildomain.Result
	CrossSource *crosssource.Validator
	Discrepancy *discrepancy.Detector
	Duplicate   *duplicate.Detector
	Scorer      *scoring.Scorer
	Thresholds  config.Thresholds
	Log         logging.Logger
}

// New builds an Engine with the default collaborator wiring over store s.
func New(s store.RecordStore, t config.Thresholds, log logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop{}
	}
	return &Engine{
		Store:       s,
		Identifier:  identifier.New(s, t),
		EmailDomain: emaildomain.Apply,
		CrossSource: crosssource.New(),
		Discrepancy: discrepancy.New(),
		Duplicate:   duplicate.New(s),
		Scorer:      scoring.New(t),
		Thresholds:  t,
		Log:         log,
	}
}

// candidateState tracks the fuzzy composite (if any) alongside the
// in-progress MatchResult, since the scorer needs the raw composite to
// re-derive the name component (spec.md §4.9 step 2).
type candidateState struct {
	result    *model.MatchResult
	composite *fuzzy.CompositeResult
}

// FindMatches runs the full pipeline (spec.md §4.10) for a primary
// extraction and an optional secondary (tax-form) extraction, returning
// up to 5 ranked match results.
func (e *Engine) FindMatches(ctx context.Context, primary model.ExtractedEntity, secondary *model.ExtractedEntity) []model.MatchResult {
	debugLog("FindMatches starting for legal_name=%q", primary.LegalName)

	byEntity := make(map[int64]*candidateState)
	var order []int64

	track := func(result *model.MatchResult) *candidateState {
		if result.Candidate.EntityID == 0 {
			panic("engine: candidate has no entity_id")
		}
		cs, ok := byEntity[result.Candidate.EntityID]
		if !ok {
			cs = &candidateState{result: result}
			byEntity[result.Candidate.EntityID] = cs
			order = append(order, result.Candidate.EntityID)
		}
		return cs
	}

	// Step 1: identifier seeding (spec.md §4.3).
	for _, result := range e.Identifier.Seed(ctx, primary) {
		track(result)
	}
	debugLog("identifier seeding produced %d candidates", len(order))

	// Step 2: fuzzy name matching if fewer than 5 candidates (spec.md §4.4).
	if len(order) < maxResults {
		e.seedFuzzyCandidates(ctx, primary, byEntity, track)
	}

	// Step 3: email-domain booster, and baseline email-domain candidates
	// if still fewer than 3 (spec.md §4.5).
	e.applyEmailDomainBoost(primary, byEntity, order)
	if len(order) < 3 && primary.EmailDomain != "" {
		e.seedEmailDomainCandidates(ctx, primary, byEntity, track)
	}

	// Step 4: cross-source validation (spec.md §4.6).
	if secondary != nil {
		for _, id := range order {
			cs := byEntity[id]
			outcome := e.CrossSource.Validate(primary, *secondary, cs.result.Candidate)
			cs.result.SetComponent(model.ComponentTaxFormValidation, outcome.Adjustment)
			for _, ev := range outcome.Evidence {
				cs.result.AddEvidence("%s", ev)
			}
		}
	}

	// Step 5: discrepancy and duplicate detection.
	for _, id := range order {
		cs := byEntity[id]
		cs.result.Discrepancies = append(cs.result.Discrepancies, e.Discrepancy.DetectPrimary(primary, cs.result.Candidate)...)
		cs.result.Discrepancies = append(cs.result.Discrepancies, e.Discrepancy.DetectInternal(cs.result.Candidate)...)
		if secondary != nil {
			cs.result.Discrepancies = append(cs.result.Discrepancies, e.Discrepancy.DetectCrossSource(primary, *secondary)...)
		}

		dupes := e.Duplicate.Find(ctx, cs.result.Candidate)
		cs.result.PotentialDuplicates = dupes
		for _, dup := range dupes {
			cs.result.Discrepancies = append(cs.result.Discrepancies,
				discrepancy.DuplicateDiscrepancy(cs.result.Candidate.ShortName, dup.EntityID))
		}
	}

	// Step 6: confidence scoring (spec.md §4.9).
	for _, id := range order {
		cs := byEntity[id]
		geoConsistent := geographicConsistency(primary, cs.result.Candidate)
		e.Scorer.Finalize(cs.result, cs.composite, len(cs.result.PotentialDuplicates) > 0, geoConsistent)
	}

	// Step 7: sort by score descending, ties by earlier insertion, keep top 5.
	results := make([]model.MatchResult, len(order))
	for i, id := range order {
		results[i] = *byEntity[id].result
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score() > results[j].Score() })
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// seedFuzzyCandidates runs per-candidate fuzzy name scoring (spec.md
// §4.4, §4.10 step 2) against the name-candidate query results. A
// candidate already tracked from identifier seeding is enriched with its
// composite here too (so the confidence scorer's name component, spec.md
// §4.9 step 2, is available for identifier matches whose name also
// agrees) without re-applying the >50 admission threshold, which only
// gates brand-new, fuzzy-only candidates into the pool.
func (e *Engine) seedFuzzyCandidates(ctx context.Context, primary model.ExtractedEntity, byEntity map[int64]*candidateState, track func(*model.MatchResult) *candidateState) {
	rows, err := e.Store.FindCandidatesByName(ctx, primary.LegalName, primary.FundManager)
	if err != nil {
		return
	}
	for _, row := range rows {
		_, alreadyTracked := byEntity[row.EntityID]

		legal := fuzzy.LegalNameScore(primary.LegalName, row.FullName)
		if primary.DBA != "" {
			legal = maxF(legal, fuzzy.ExtractedDBAScore(primary.DBA, row.FullName))
		}
		fm := fuzzy.FundManagerScore(primary.FundManager, row.FundManagerField)
		composite := fuzzy.Composite(legal, primary.HasFundManager(), row.HasFundManagerField(), fm, e.Thresholds)

		if !alreadyTracked && composite.Final*100 <= e.Thresholds.FuzzyAdmitFloor {
			continue
		}

		var result *model.MatchResult
		if alreadyTracked {
			result = byEntity[row.EntityID].result
		} else {
			result = model.NewMatchResult(row, model.StrategyFuzzyName)
		}
		result.Composite = true
		result.SetComponent(model.ComponentLegalNameFuzzy, 70*composite.Legal)
		result.SetComponent(model.ComponentFundManagerFuzzy, 30*composite.FM)
		result.AddEvidence("fuzzy name match, branch=%s legal=%.2f fm=%.2f", composite.Branch, composite.Legal, composite.FM)
		if composite.Branch == "mismatch" {
			result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
				Type: model.TypeEntityTypeMismatch, Severity: model.SeverityMedium, Source: model.SourceNameCheck,
				Description: "one of extraction/candidate carries a fund manager, the other does not",
				Details:     discrepancy.EntityTypeMismatch{HasExtractionFM: primary.HasFundManager(), HasCandidateFM: row.HasFundManagerField()},
			})
		}

		cs := track(result)
		cs.composite = &composite
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (e *Engine) applyEmailDomainBoost(primary model.ExtractedEntity, byEntity map[int64]*candidateState, order []int64) {
	if primary.EmailDomain == "" {
		return
	}
	for _, id := range order {
		cs := byEntity[id]
		r := e.EmailDomain(primary.EmailDomain, cs.result.Candidate, e.Thresholds)
		if !r.Applied {
			continue
		}
		cs.result.SetComponent(model.ComponentEmailDomainBoost, r.Boost)
		cs.result.AddEvidence("%s", r.Evidence)
	}
}

func (e *Engine) seedEmailDomainCandidates(ctx context.Context, primary model.ExtractedEntity, byEntity map[int64]*candidateState, track func(*model.MatchResult) *candidateState) {
	rows, err := e.Store.FindByEmailDomain(ctx, primary.EmailDomain)
	if err != nil {
		return
	}
	for _, row := range rows {
		if _, exists := byEntity[row.EntityID]; exists {
			continue
		}
		result := model.NewMatchResult(row, model.StrategyEmailDomain)
		result.SetScore(60)
		result.AddEvidence("baseline email-domain candidate for domain %s", primary.EmailDomain)
		track(result)
	}
}

// geographicConsistency implements spec.md §4.9 step 4: consistent when
// either country is missing (no contradiction possible), or when both
// extraction and candidate carry MEIs and their country prefixes agree,
// or when the stored country codes agree.
func geographicConsistency(e model.ExtractedEntity, c model.StoreEntity) bool {
	if e.LegalCountry == "" || c.CountryCode == "" {
		return true
	}
	if e.MEI != "" && c.MEI != "" {
		if model.MEICountryPrefix(e.MEI) == model.MEICountryPrefix(c.MEI) {
			return true
		}
	}
	return e.LegalCountry == c.CountryCode
}

// Decide derives the categorical decision from the top candidate (spec.md
// §4.10). An empty results list is NO_MATCH (new entity); otherwise the
// score/discrepancy rule applies to results[0]. §4.10's decision table
// only names the CRITICAL-discrepancy override for the 70-85 band, but
// §8's invariant ("any CRITICAL discrepancy ⇒ decision ≠ MATCH below 85")
// and its cross-form EIN conflict scenario ("MANUAL_REVIEW even if base
// ≥ 70") both read as: a CRITICAL discrepancy should never be capable of
// auto-matching, regardless of how high the surviving score lands. The
// override is applied uniformly across the ≥70 range rather than only
// the 70-85 slice, so a CRITICAL finding always forces manual review.
func Decide(results []model.MatchResult, t config.Thresholds) model.Decision {
	if len(results) == 0 {
		return model.DecisionNoMatch
	}
	top := results[0]
	score := top.Score()
	critical := top.HasCriticalDiscrepancy()
	switch {
	case score >= t.BandMediumMin:
		if critical {
			return model.DecisionManualReview
		}
		return model.DecisionMatch
	case score >= 50:
		return model.DecisionManualReview
	default:
		return model.DecisionNoMatch
	}
}
