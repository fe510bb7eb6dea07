// Package store defines the read-only record-store surface the matching
// engine consumes (spec.md §4.2) and provides two implementations: a
// pgxpool-backed Postgres store for production and an in-memory fake for
// tests. The interface-plus-fake shape follows the teacher repo's
// dataservice package, generalized so every matcher component depends on
// the interface, never a concrete store (spec.md §9 DI guidance).
package store

import (
	"context"

	"github.com/entitymatch/reconciler/internal/model"
)

// RecordStore is the read-only lookup surface spec.md §4.2 requires.
// Every operation may fail with a transient error; callers treat failure
// as an empty result rather than propagating it (spec.md §7).
type RecordStore interface {
	FindByMEI(ctx context.Context, mei string) ([]model.StoreEntity, error)
	FindByLEI(ctx context.Context, lei string) ([]model.StoreEntity, error)
	FindByEIN(ctx context.Context, ein string) ([]model.StoreEntity, error)
	FindByDebtDomainID(ctx context.Context, id string) ([]model.StoreEntity, error)
	FindCandidatesByName(ctx context.Context, legalName, fundManager string) ([]model.StoreEntity, error)
	FindByEmailDomain(ctx context.Context, domain string) ([]model.StoreEntity, error)
	FindByCleanedShortName(ctx context.Context, cleaned string) ([]model.StoreEntity, error)
	FindByID(ctx context.Context, id int64) (*model.StoreEntity, error)
}

// maxNameCandidates caps find_candidates_by_name results (spec.md §4.2).
const maxNameCandidates = 100
