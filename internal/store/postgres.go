package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/entitymatch/reconciler/internal/logging"
	"github.com/entitymatch/reconciler/internal/model"
)

// PostgresStore is the production RecordStore, backed by a pgxpool.Pool
// borrowed per query rather than one long-lived connection shared across
// workers — the teacher's dataservice package held a single connection
// for the process lifetime, which spec.md §9 flags as a correctness
// hazard under concurrent workers; pooling with per-query borrow is the
// fix this implementation applies.
type PostgresStore struct {
	pool  *pgxpool.Pool
	cache *IdentifierCache
	log   logging.Logger
}

// NewPostgresStore builds a PostgresStore from an existing pool, wiring
// an IdentifierCache per (kind,value) tuple (spec.md §4.2, §9).
func NewPostgresStore(pool *pgxpool.Pool, cache *IdentifierCache, log logging.Logger) *PostgresStore {
	if log == nil {
		log = logging.Nop{}
	}
	return &PostgresStore{pool: pool, cache: cache, log: log}
}

var _ RecordStore = (*PostgresStore)(nil)

// OpenPool opens a pgxpool.Pool from the RECONCILER_DATABASE_URL
// environment variable (or dsn override when non-empty), mirroring the teacher's
// dataservice.InitDB/getDatabaseURL convention.
func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		dsn = databaseURL()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("store: parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: open pool: %w", err)
	}
	return pool, nil
}

func databaseURL() string {
	if v := os.Getenv("RECONCILER_DATABASE_URL"); v != "" {
		return v
	}
	return "postgres://localhost:5432/reconciler?sslmode=disable"
}

// HealthCheck pings the pool, surfacing connectivity problems at startup
// rather than on the first query.
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const baseSelect = `
SELECT entity_id, full_name, short_name, fund_manager_field, mei, lei, ein,
       debt_domain_id, email_domain, country_code, legal_address, tax_address,
       is_location, parent_customer_id, last_modified, record_type
FROM reconciliation_entities`

// FindByMEI returns records whose MEI matches the primary record's field
// or a location sub-entity's field (spec.md §4.2), using the identifier
// cache keyed by ("mei", value).
func (s *PostgresStore) FindByMEI(ctx context.Context, mei string) ([]model.StoreEntity, error) {
	return s.cachedIdentifierQuery(ctx, "mei", mei, baseSelect+" WHERE mei = $1", mei)
}

func (s *PostgresStore) FindByLEI(ctx context.Context, lei string) ([]model.StoreEntity, error) {
	return s.cachedIdentifierQuery(ctx, "lei", lei, baseSelect+" WHERE lei = $1", lei)
}

// FindByEIN compares hyphen-insensitively, so the query matches both
// canonical and bare-digit storage of the same EIN.
func (s *PostgresStore) FindByEIN(ctx context.Context, ein string) ([]model.StoreEntity, error) {
	digits := model.EINDigitsOnly(ein)
	return s.cachedIdentifierQuery(ctx, "ein", ein,
		baseSelect+" WHERE regexp_replace(ein, '-', '', 'g') = $1", digits)
}

func (s *PostgresStore) FindByDebtDomainID(ctx context.Context, id string) ([]model.StoreEntity, error) {
	return s.cachedIdentifierQuery(ctx, "debt_domain_id", id, baseSelect+" WHERE debt_domain_id = $1", id)
}

func (s *PostgresStore) cachedIdentifierQuery(ctx context.Context, kind, value, sql string, arg any) ([]model.StoreEntity, error) {
	if value == "" {
		return nil, nil
	}
	if cached, ok := s.cache.Get(kind, value); ok {
		rows, _ := cached.([]model.StoreEntity)
		return rows, nil
	}

	rows, err := s.queryEntities(ctx, sql, arg)
	if err != nil {
		s.log.Warn("store: transient error on %s lookup %q: %v", kind, value, err)
		return nil, nil
	}
	s.cache.Put(kind, value, rows)
	return rows, nil
}

func (s *PostgresStore) FindCandidatesByName(ctx context.Context, legalName, fundManager string) ([]model.StoreEntity, error) {
	if legalName == "" && fundManager == "" {
		return nil, nil
	}
	sql := baseSelect + `
WHERE ($1 <> '' AND (full_name ILIKE '%' || $1 || '%' OR short_name ILIKE '%' || $1 || '%'))
   OR ($2 <> '' AND fund_manager_field ILIKE '%' || $2 || '%')
ORDER BY
  CASE WHEN lower(full_name) = lower($1) THEN 0
       WHEN lower(short_name) = lower($1) THEN 1
       ELSE 2 END
LIMIT ` + fmt.Sprint(maxNameCandidates)
	rows, err := s.queryEntities(ctx, sql, legalName, fundManager)
	if err != nil {
		s.log.Warn("store: transient error on name candidate query: %v", err)
		return nil, nil
	}
	return rows, nil
}

func (s *PostgresStore) FindByEmailDomain(ctx context.Context, domain string) ([]model.StoreEntity, error) {
	if domain == "" {
		return nil, nil
	}
	sql := baseSelect + `
WHERE email_domain = $1
   OR full_name ILIKE '%' || $2 || '%'
   OR fund_manager_field ILIKE '%' || $2 || '%'`
	rows, err := s.queryEntities(ctx, sql, domain, domainRoot(domain))
	if err != nil {
		s.log.Warn("store: transient error on email domain query: %v", err)
		return nil, nil
	}
	return rows, nil
}

func (s *PostgresStore) FindByCleanedShortName(ctx context.Context, cleaned string) ([]model.StoreEntity, error) {
	if cleaned == "" {
		return nil, nil
	}
	sql := baseSelect + ` WHERE regexp_replace(lower(short_name), '[^a-z0-9]', '', 'g') = $1`
	rows, err := s.queryEntities(ctx, sql, cleaned)
	if err != nil {
		s.log.Warn("store: transient error on cleaned short-name query: %v", err)
		return nil, nil
	}
	return rows, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*model.StoreEntity, error) {
	rows, err := s.queryEntities(ctx, baseSelect+" WHERE entity_id = $1", id)
	if err != nil {
		s.log.Warn("store: transient error on id lookup %d: %v", id, err)
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *PostgresStore) queryEntities(ctx context.Context, sql string, args ...any) ([]model.StoreEntity, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StoreEntity
	for rows.Next() {
		var e model.StoreEntity
		var recordType string
		if err := rows.Scan(&e.EntityID, &e.FullName, &e.ShortName, &e.FundManagerField,
			&e.MEI, &e.LEI, &e.EIN, &e.DebtDomainID, &e.EmailDomain, &e.CountryCode,
			&e.LegalAddress, &e.TaxAddress, &e.IsLocation, &e.ParentCustomerID,
			&e.LastModified, &recordType); err != nil {
			return nil, err
		}
		e.RecordType = model.RecordType(recordType)
		out = append(out, e)
	}
	return out, rows.Err()
}
