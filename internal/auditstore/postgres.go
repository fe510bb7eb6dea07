// Package auditstore persists reconciliation runs and their discrepancies
// for audit trail (spec.md §9, SPEC_FULL.md §4.12), adapted from the
// teacher's internal/storage/postgres.go: same sqlx + lib/pq connect and
// schema-creation convention, same DEBUG/debugLog breakpoint logging, and
// the same insert-then-RETURNING-id pattern its InsertVersion/InsertCase
// used — generalized from case/version/amendment rows onto reconciliation
// runs and discrepancies. This is pure logging: the record store (package
// store) is never written to from here.
package auditstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/lib/pq"

	"github.com/entitymatch/reconciler/internal/model"
)

const debug = false

func debugLog(format string, args ...any) {
	if debug {
		log.Printf("[AUDITSTORE DEBUG] "+format, args...)
	}
}

// ConnectPostgres opens a connection pool and creates the audit schema if
// it does not already exist, mirroring the teacher's ConnectPostgres.
func ConnectPostgres() (*sqlx.DB, error) {
	debugLog("=== AUDITSTORE BREAKPOINT 1: ConnectPostgres called ===")
	host := os.Getenv("PGHOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("PGPORT")
	if port == "" {
		port = "5432"
	}
	user := os.Getenv("PGUSER")
	if user == "" {
		user = "postgres"
	}
	password := os.Getenv("PGPASSWORD")
	dbname := os.Getenv("PGDATABASE")
	if dbname == "" {
		dbname = "reconciler"
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable", host, port, user, dbname)
	if password != "" {
		connStr = fmt.Sprintf("%s password=%s", connStr, password)
	}

	debugLog("=== AUDITSTORE BREAKPOINT 2: attempting to connect ===")
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("auditstore connection failed (host=%s, port=%s, dbname=%s): %w", host, port, dbname, err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			debugLog("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("auditstore ping failed: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	debugLog("=== AUDITSTORE BREAKPOINT 3: creating schema ===")
	schema := `
	CREATE TABLE IF NOT EXISTS reconciliation_runs (
		id SERIAL PRIMARY KEY,
		record_id TEXT NOT NULL,
		primary_legal_name TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		decision TEXT NOT NULL,
		selected_entity_id BIGINT,
		selected_score DOUBLE PRECISION,
		audit_trail TEXT[],
		duration_ms BIGINT NOT NULL,
		metadata JSONB,
		created_at TIMESTAMP DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS reconciliation_discrepancies (
		id SERIAL PRIMARY KEY,
		run_id INT NOT NULL REFERENCES reconciliation_runs(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		source TEXT NOT NULL,
		description TEXT,
		created_at TIMESTAMP DEFAULT NOW()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			debugLog("failed to close database after schema error: %v", closeErr)
		}
		return nil, fmt.Errorf("auditstore schema creation failed: %w", err)
	}
	debugLog("schema created/verified successfully")
	return db, nil
}

// InsertRun persists a ProcessingResult and its selected match's
// discrepancies, returning the generated run id.
func InsertRun(db *sqlx.DB, result *model.ProcessingResult) (int64, error) {
	if result == nil {
		return 0, fmt.Errorf("auditstore: nil processing result")
	}

	metadataJSON, err := json.Marshal(result.Metadata)
	if err != nil {
		return 0, fmt.Errorf("auditstore: marshal metadata: %w", err)
	}

	var selectedEntityID *int64
	var selectedScore *float64
	if result.Selected != nil {
		id := result.Selected.Candidate.EntityID
		score := result.Selected.Score()
		selectedEntityID = &id
		selectedScore = &score
	}

	debugLog("=== AUDITSTORE BREAKPOINT 4: InsertRun called for record_id=%s ===", result.RecordID)
	query := `
		INSERT INTO reconciliation_runs
		(record_id, primary_legal_name, entity_type, decision, selected_entity_id,
		 selected_score, audit_trail, duration_ms, metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	var runID int64
	err = db.QueryRow(query,
		result.RecordID, result.Primary.LegalName, string(result.EntityType), string(result.Decision),
		selectedEntityID, selectedScore, pq.Array(result.AuditTrail), result.Duration.Milliseconds(), metadataJSON,
	).Scan(&runID)
	if err != nil {
		debugLog("InsertRun failed: %v", err)
		return 0, fmt.Errorf("auditstore: insert run failed (record_id=%s): %w", result.RecordID, err)
	}

	if result.Selected != nil {
		for _, d := range result.Selected.Discrepancies {
			if err := insertDiscrepancy(db, runID, d); err != nil {
				return runID, err
			}
		}
	}

	debugLog("run recorded: record_id=%s decision=%s id=%d", result.RecordID, result.Decision, runID)
	return runID, nil
}

func insertDiscrepancy(db *sqlx.DB, runID int64, d model.Discrepancy) error {
	query := `
		INSERT INTO reconciliation_discrepancies (run_id, type, severity, source, description)
		VALUES ($1,$2,$3,$4,$5)
	`
	_, err := db.Exec(query, runID, string(d.Type), string(d.Severity), string(d.Source), d.Description)
	if err != nil {
		debugLog("insertDiscrepancy failed: %v", err)
		return fmt.Errorf("auditstore: insert discrepancy failed (run_id=%d): %w", runID, err)
	}
	return nil
}

// RunRecord is one row from reconciliation_runs, for audit-history reads.
type RunRecord struct {
	ID               int64     `db:"id"`
	RecordID         string    `db:"record_id"`
	PrimaryLegalName string    `db:"primary_legal_name"`
	EntityType       string    `db:"entity_type"`
	Decision         string    `db:"decision"`
	SelectedEntityID *int64    `db:"selected_entity_id"`
	SelectedScore    *float64  `db:"selected_score"`
	DurationMS       int64     `db:"duration_ms"`
	CreatedAt        time.Time `db:"created_at"`
}

// GetRunHistory retrieves every recorded run for recordID, most recent
// first, mirroring the teacher's GetValidationHistory.
func GetRunHistory(db *sqlx.DB, recordID string) ([]RunRecord, error) {
	if recordID == "" {
		return nil, fmt.Errorf("auditstore: record id is required")
	}
	var runs []RunRecord
	query := `
		SELECT id, record_id, primary_legal_name, entity_type, decision,
		       selected_entity_id, selected_score, duration_ms, created_at
		FROM reconciliation_runs
		WHERE record_id = $1
		ORDER BY created_at DESC
	`
	if err := db.Select(&runs, query, recordID); err != nil {
		return nil, fmt.Errorf("auditstore: get run history failed for record %s: %w", recordID, err)
	}
	return runs, nil
}

// DiscrepancyRecord is one row from reconciliation_discrepancies.
type DiscrepancyRecord struct {
	ID          int64     `db:"id"`
	RunID       int64     `db:"run_id"`
	Type        string    `db:"type"`
	Severity    string    `db:"severity"`
	Source      string    `db:"source"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// GetDiscrepancies retrieves every discrepancy logged for a run.
func GetDiscrepancies(db *sqlx.DB, runID int64) ([]DiscrepancyRecord, error) {
	var rows []DiscrepancyRecord
	query := `
		SELECT id, run_id, type, severity, source, description, created_at
		FROM reconciliation_discrepancies
		WHERE run_id = $1
		ORDER BY created_at ASC
	`
	if err := db.Select(&rows, query, runID); err != nil {
		return nil, fmt.Errorf("auditstore: get discrepancies failed for run %d: %w", runID, err)
	}
	return rows, nil
}
