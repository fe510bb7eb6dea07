// Package duplicate implements the duplicate detector (spec.md §4.8):
// for a matched candidate, it collects potential duplicates by union of
// shared-identifier, shared-cleaned-short-name, and similar-name store
// rows, deduplicated by entity_id. It is run strictly after candidate
// selection (spec.md §9) so it never re-enters the primary candidate
// query.
package duplicate

import (
	"context"
	"strings"

	"github.com/entitymatch/reconciler/internal/model"
	"github.com/entitymatch/reconciler/internal/normalize"
	"github.com/entitymatch/reconciler/internal/store"
)

// Detector finds potential duplicates for an already-selected candidate.
type Detector struct {
	Store store.RecordStore
}

// New builds a Detector over store s.
func New(s store.RecordStore) *Detector {
	return &Detector{Store: s}
}

// Find returns every store row, other than candidate itself, that shares
// an identifier, a cleaned short name, or a similar full name with it.
func (d *Detector) Find(ctx context.Context, candidate model.StoreEntity) []model.StoreEntity {
	seen := map[int64]bool{candidate.EntityID: true}
	var out []model.StoreEntity

	collect := func(rows []model.StoreEntity) {
		for _, r := range rows {
			if seen[r.EntityID] {
				continue
			}
			seen[r.EntityID] = true
			out = append(out, r)
		}
	}

	if candidate.MEI != "" {
		if rows, err := d.Store.FindByMEI(ctx, candidate.MEI); err == nil {
			collect(rows)
		}
	}
	if candidate.LEI != "" {
		if rows, err := d.Store.FindByLEI(ctx, candidate.LEI); err == nil {
			collect(rows)
		}
	}
	if candidate.EIN != "" {
		if rows, err := d.Store.FindByEIN(ctx, candidate.EIN); err == nil {
			collect(rows)
		}
	}
	if cleaned := candidate.CleanedShortName(); cleaned != "" {
		if rows, err := d.Store.FindByCleanedShortName(ctx, cleaned); err == nil {
			collect(rows)
		}
	}
	if candidate.FullName != "" {
		if rows, err := d.Store.FindCandidatesByName(ctx, candidate.FullName, ""); err == nil {
			for _, r := range rows {
				if seen[r.EntityID] {
					continue
				}
				if AreNamesSimilar(candidate.FullName, r.FullName) {
					seen[r.EntityID] = true
					out = append(out, r)
				}
			}
		}
	}

	return out
}

// AreNamesSimilar implements the name-similarity rule from spec.md §4.8:
// equal after normalization, one contains the other, or their word
// multisets are equal.
func AreNamesSimilar(a, b string) bool {
	na, nb := normalize.Name(a), normalize.Name(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return normalize.MultisetsEqual(normalize.WordMultiset(na), normalize.WordMultiset(nb))
}
