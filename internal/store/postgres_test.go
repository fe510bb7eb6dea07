package store

import (
	"strings"
	"testing"
)

// These exercise the connection-string and query-shape logic that needs
// no live Postgres; PostgresStore's query methods themselves are
// exercised against MemoryStore's behavioral parity instead, since
// RecordStore is the contract both implementations satisfy.

func TestDatabaseURLDefault(t *testing.T) {
	t.Setenv("RECONCILER_DATABASE_URL", "")
	if got := databaseURL(); !strings.Contains(got, "reconciler") {
		t.Errorf("expected default dsn to reference the reconciler database, got %q", got)
	}
}

func TestDatabaseURLFromEnv(t *testing.T) {
	const want = "postgres://example.invalid:5432/custom?sslmode=disable"
	t.Setenv("RECONCILER_DATABASE_URL", want)
	if got := databaseURL(); got != want {
		t.Errorf("expected env override %q, got %q", want, got)
	}
}

func TestBaseSelectNamesEveryStoreEntityColumn(t *testing.T) {
	for _, col := range []string{
		"entity_id", "full_name", "short_name", "fund_manager_field",
		"mei", "lei", "ein", "debt_domain_id", "email_domain", "country_code",
		"legal_address", "tax_address", "is_location", "parent_customer_id",
		"last_modified", "record_type",
	} {
		if !strings.Contains(baseSelect, col) {
			t.Errorf("baseSelect missing column %q", col)
		}
	}
}
