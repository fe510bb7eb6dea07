// Package config centralizes the tunable weights and thresholds the
// matching engine uses, generalizing the ScoringConfig/DefaultScoringConfig
// constructor pattern seen in the retrieval pack's embedding-search example
// into a typed struct for this domain instead of scattering magic numbers
// across the matcher packages.
package config

import "time"

// Thresholds holds every tunable constant spec.md pins to a specific value.
// Fields are grouped by the component that consumes them. None of these
// are read from user input at match time, so the struct is safe to share
// across goroutines once built.
type Thresholds struct {
	// Confidence bands (spec.md §3), evaluated high-to-low.
	BandHighMin       float64
	BandMediumHighMin float64
	BandMediumMin     float64

	// Identifier matcher base scores and corroboration boosts (spec.md §4.3).
	MEIBaseScore          float64
	LEIBaseScore          float64
	EINBaseScore          float64
	DebtDomainIDBaseScore float64
	MEICorroborationBoost float64
	LEICorroborationBoost float64
	EINCorroborationBoost float64

	// Fuzzy name matcher (spec.md §4.4, §6).
	FuzzyNameCandidateFloor float64
	FuzzyNameWeight         float64
	FuzzyFundManagerWeight  float64
	FuzzyAdmitFloor         float64

	// Email-domain booster (spec.md §4.5): the corporate-family synonym
	// boost. The direct-root-hit boost (20) and the soft ccTLD/keyword
	// accumulation (5, 3) are fixed parts of that layered rule, not
	// independently tunable, so they stay literal in package emaildomain.
	EmailDomainBoost float64

	// Discrepancy severities, expressed as penalties (spec.md §3).
	PenaltyCritical int
	PenaltyHigh     int
	PenaltyMedium   int
	PenaltyLow      int

	// Concurrency (spec.md §5).
	WorkerPoolSize        int
	PerRecordDeadline     time.Duration
	ShutdownDrainDeadline time.Duration

	// Identifier lookup cache (spec.md §9).
	IdentifierCacheCapacity int
	IdentifierCacheFreshFor time.Duration
}

// DefaultThresholds returns the constants spec.md pins explicitly. Callers
// that need different tuning build their own Thresholds value rather than
// mutating this one, since components take a Thresholds by value.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BandHighMin:       95,
		BandMediumHighMin: 85,
		BandMediumMin:     70,

		MEIBaseScore:          40,
		LEIBaseScore:          35,
		EINBaseScore:          30,
		DebtDomainIDBaseScore: 25,
		MEICorroborationBoost: 20,
		LEICorroborationBoost: 15,
		EINCorroborationBoost: 10,

		FuzzyNameCandidateFloor: 70,
		FuzzyNameWeight:         0.7,
		FuzzyFundManagerWeight:  0.3,
		FuzzyAdmitFloor:         50,

		EmailDomainBoost: 15,

		PenaltyCritical: -25,
		PenaltyHigh:     -15,
		PenaltyMedium:   -10,
		PenaltyLow:      -5,

		WorkerPoolSize:        4,
		PerRecordDeadline:     60 * time.Second,
		ShutdownDrainDeadline: 60 * time.Second,

		IdentifierCacheCapacity: 1000,
		IdentifierCacheFreshFor: 10 * time.Minute,
	}
}
