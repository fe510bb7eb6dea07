package store

import (
	"context"
	"sort"
	"strings"

	"github.com/entitymatch/reconciler/internal/model"
)

// MemoryStore is an in-memory RecordStore fake for tests, implementing
// the same matching semantics as PostgresStore's SQL without a database,
// mirroring the teacher repo's pattern of keeping a plain-struct fake
// alongside the real store.
type MemoryStore struct {
	rows []model.StoreEntity
}

// NewMemoryStore builds a fake store seeded with rows.
func NewMemoryStore(rows []model.StoreEntity) *MemoryStore {
	return &MemoryStore{rows: rows}
}

var _ RecordStore = (*MemoryStore)(nil)

func (m *MemoryStore) FindByMEI(_ context.Context, mei string) ([]model.StoreEntity, error) {
	if mei == "" {
		return nil, nil
	}
	var out []model.StoreEntity
	for _, r := range m.rows {
		if r.MEI == mei {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindByLEI(_ context.Context, lei string) ([]model.StoreEntity, error) {
	if lei == "" {
		return nil, nil
	}
	var out []model.StoreEntity
	for _, r := range m.rows {
		if r.LEI == lei {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindByEIN(_ context.Context, ein string) ([]model.StoreEntity, error) {
	if ein == "" {
		return nil, nil
	}
	var out []model.StoreEntity
	for _, r := range m.rows {
		if model.EINsEqual(r.EIN, ein) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindByDebtDomainID(_ context.Context, id string) ([]model.StoreEntity, error) {
	if id == "" {
		return nil, nil
	}
	var out []model.StoreEntity
	for _, r := range m.rows {
		if r.DebtDomainID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

// FindCandidatesByName performs a case-insensitive substring match on
// full_name, short_name, or fund_manager_field, ordered by (exact
// full-name match, exact short-name match, else), capped at 100
// (spec.md §4.2).
func (m *MemoryStore) FindCandidatesByName(_ context.Context, legalName, fundManager string) ([]model.StoreEntity, error) {
	legal := strings.ToLower(strings.TrimSpace(legalName))
	fm := strings.ToLower(strings.TrimSpace(fundManager))
	if legal == "" && fm == "" {
		return nil, nil
	}

	type ranked struct {
		entity model.StoreEntity
		rank   int
	}
	var hits []ranked
	for _, r := range m.rows {
		full := strings.ToLower(r.FullName)
		short := strings.ToLower(r.ShortName)
		field := strings.ToLower(r.FundManagerField)

		matched := false
		rank := 2
		if legal != "" && full == legal {
			matched, rank = true, 0
		} else if legal != "" && short == legal {
			matched, rank = true, 1
		} else if legal != "" && (strings.Contains(full, legal) || strings.Contains(short, legal)) {
			matched, rank = true, 2
		}
		if !matched && fm != "" && strings.Contains(field, fm) {
			matched, rank = true, 2
		}
		if matched {
			hits = append(hits, ranked{entity: r, rank: rank})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	if len(hits) > maxNameCandidates {
		hits = hits[:maxNameCandidates]
	}
	out := make([]model.StoreEntity, len(hits))
	for i, h := range hits {
		out[i] = h.entity
	}
	return out, nil
}

// FindByEmailDomain matches an exact domain or a substring of the
// domain-root in full_name or fund_manager_field (spec.md §4.2).
func (m *MemoryStore) FindByEmailDomain(_ context.Context, domain string) ([]model.StoreEntity, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, nil
	}
	root := domainRoot(domain)
	var out []model.StoreEntity
	for _, r := range m.rows {
		if strings.EqualFold(r.EmailDomain, domain) {
			out = append(out, r)
			continue
		}
		full := strings.ToLower(r.FullName)
		field := strings.ToLower(r.FundManagerField)
		if root != "" && (strings.Contains(full, root) || strings.Contains(field, root)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindByCleanedShortName(_ context.Context, cleaned string) ([]model.StoreEntity, error) {
	if cleaned == "" {
		return nil, nil
	}
	var out []model.StoreEntity
	for _, r := range m.rows {
		if r.CleanedShortName() == cleaned {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (*model.StoreEntity, error) {
	for _, r := range m.rows {
		if r.EntityID == id {
			row := r
			return &row, nil
		}
	}
	return nil, nil
}

// domainRoot strips the TLD and subdomain, returning the registrable
// second-level label (e.g. "blackrock.com" -> "blackrock").
func domainRoot(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return domain
	}
	return parts[len(parts)-2]
}
