package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/privascan/privascan/internal/model"
)

// ScanDB provides SQLite-based storage for scan reports and snapshots.
// Full reports are stored as JSON; the comparison engine reads from a
// separate snapshot table that carries only the fields it compares.
//
// Design decision: We keep one database file per data directory rather
// than one per subject. Subjects share the file and are distinguished by
// a key column, which keeps cross-subject listing a single query.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; otherwise a missing database is an error.
func Open(dbDir string, opts Options) (*ScanDB, error) {
	dbPath := filepath.Join(dbDir, "privascan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
// Timestamps are stored as Unix milliseconds to match the wire format of
// snapshots and timeline entries.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Full scan reports stored as JSON
	CREATE TABLE IF NOT EXISTS scan_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_id TEXT NOT NULL UNIQUE,
		subject TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		risk_level TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_subject ON scan_reports(subject);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON scan_reports(timestamp);

	-- Comparison snapshots, one row per completed scan
	CREATE TABLE IF NOT EXISTS snapshots (
		scan_id TEXT PRIMARY KEY,
		subject TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		privacy_score INTEGER NOT NULL,
		risk_level TEXT NOT NULL,
		ip TEXT,
		vpn INTEGER NOT NULL DEFAULT 0,
		fingerprint_uniqueness REAL NOT NULL DEFAULT 0,
		dns_leak INTEGER NOT NULL DEFAULT 0,
		webrtc_leak INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_subject ON snapshots(subject);
	CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport stores a completed scan report together with its derived
// snapshot in one transaction.
func (sdb *ScanDB) SaveReport(ctx context.Context, report *model.ScanReport) error {
	if report.ScanID == "" {
		return errors.New("report has no scan ID")
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	riskLevel := ""
	if report.Privacy != nil {
		riskLevel = string(report.Privacy.RiskLevel)
	}
	snap := report.Snapshot()

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, `
	INSERT INTO scan_reports (scan_id, subject, timestamp, risk_level, report_json)
	VALUES (?, ?, ?, ?, ?)
	`, report.ScanID, report.Subject, report.DateScanned.UnixMilli(), riskLevel, string(reportJSON))
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO snapshots (scan_id, subject, timestamp, privacy_score, risk_level, ip, vpn, fingerprint_uniqueness, dns_leak, webrtc_leak)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, report.Subject, snap.Timestamp, snap.PrivacyScore, string(snap.RiskLevel),
		snap.IP, boolInt(snap.VPN), snap.FingerprintUniqueness, boolInt(snap.DNSLeak), boolInt(snap.WebRTCLeak))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return tx.Commit()
}

// GetHistory retrieves all snapshots for a subject ordered by ascending
// scan time, ready for the comparison engine.
func (sdb *ScanDB) GetHistory(ctx context.Context, subject string) ([]model.Snapshot, error) {
	query := `
	SELECT scan_id, timestamp, privacy_score, risk_level, ip, vpn, fingerprint_uniqueness, dns_leak, webrtc_leak
	FROM snapshots
	WHERE subject = ?
	ORDER BY timestamp ASC
	`

	rows, err := sdb.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var snapshots []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var riskLevel string
		var ip sql.NullString
		var vpn, dnsLeak, webrtcLeak int

		err := rows.Scan(
			&snap.ID,
			&snap.Timestamp,
			&snap.PrivacyScore,
			&riskLevel,
			&ip,
			&vpn,
			&snap.FingerprintUniqueness,
			&dnsLeak,
			&webrtcLeak,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		snap.RiskLevel = model.RiskLevel(riskLevel)
		snap.IP = ip.String
		snap.VPN = vpn != 0
		snap.DNSLeak = dnsLeak != 0
		snap.WebRTCLeak = webrtcLeak != 0
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// GetLatestReport retrieves the most recent full report for a subject,
// or nil when the subject has no stored scans.
func (sdb *ScanDB) GetLatestReport(ctx context.Context, subject string) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scan_reports
	WHERE subject = ?
	ORDER BY timestamp DESC
	LIMIT 1
	`

	var reportJSON string
	err := sdb.db.QueryRowContext(ctx, query, subject).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListSubjects returns every subject with at least one stored scan.
func (sdb *ScanDB) ListSubjects(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT subject FROM snapshots
	ORDER BY subject
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
