package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"VolSentinel/internal/logger"
	"VolSentinel/internal/model"
)

// SQLiteRecorder persists reports to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS volatility_reports (
			id                 TEXT PRIMARY KEY,
			timestamp          INTEGER NOT NULL,
			symbol             TEXT NOT NULL,
			period             TEXT,
			source             TEXT,
			synthetic          INTEGER,
			data_points        INTEGER,
			last_price         REAL,
			volatility         REAL,
			variance           REAL,
			annualized_vol     REAL,
			autocorrelation    REAL,
			heteroskedasticity REAL,
			skewness           REAL,
			kurtosis           REAL,
			regime             TEXT,
			warnings           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_symbol_ts ON volatility_reports(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS dvol_results (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			report_id   TEXT NOT NULL REFERENCES volatility_reports(id),
			method      TEXT NOT NULL,
			dvol        REAL,
			dvol_index  REAL,
			confidence  REAL,
			data_points INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dvol_report ON dvol_results(report_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReport(ctx context.Context, rep *model.VolatilityReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var metrics model.VolatilityMetrics
	if rep.Metrics != nil {
		metrics = *rep.Metrics
	}
	var diag model.DiagnosticsResult
	if rep.Diagnostics != nil {
		diag = *rep.Diagnostics
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO volatility_reports
		(id, timestamp, symbol, period, source, synthetic, data_points, last_price,
		 volatility, variance, annualized_vol,
		 autocorrelation, heteroskedasticity, skewness, kurtosis,
		 regime, warnings)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rep.ID, rep.GeneratedAt.Unix(), rep.Symbol, string(rep.Period), rep.Source, rep.Synthetic,
		rep.DataPoints, rep.LastPrice,
		metrics.Volatility, metrics.Variance, metrics.AnnualizedVolatility,
		diag.Autocorrelation, diag.Heteroskedasticity, diag.Skewness, diag.Kurtosis,
		rep.Regime.Label, strings.Join(rep.Warnings, "; "),
	)
	if err != nil {
		return fmt.Errorf("insert report %s: %w", rep.ID, err)
	}

	for _, res := range rep.Results {
		_, err := tx.ExecContext(ctx, `INSERT INTO dvol_results
			(report_id, method, dvol, dvol_index, confidence, data_points)
			VALUES (?,?,?,?,?,?)`,
			rep.ID, string(res.Method), res.DVOL, res.DVOLIndex, res.Confidence, res.DataPoints,
		)
		if err != nil {
			return fmt.Errorf("insert %s result: %w", res.Method, err)
		}
	}
	return tx.Commit()
}

// HistoryPoint is one stored reading of a symbol's volatility.
type HistoryPoint struct {
	ReportID  string
	Timestamp int64
	Method    model.Method
	DVOL      float64
	DVOLIndex float64
	Regime    string
}

// History returns the most recent readings of one method for a symbol, newest first.
func (r *SQLiteRecorder) History(ctx context.Context, symbol string, method model.Method, limit int) ([]HistoryPoint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT v.id, v.timestamp, d.method, d.dvol, d.dvol_index, v.regime
		FROM volatility_reports v JOIN dvol_results d ON d.report_id = v.id
		WHERE v.symbol = ? AND d.method = ?
		ORDER BY v.timestamp DESC, d.id DESC
		LIMIT ?`, symbol, string(method), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []HistoryPoint
	for rows.Next() {
		var p HistoryPoint
		var m string
		if err := rows.Scan(&p.ReportID, &p.Timestamp, &m, &p.DVOL, &p.DVOLIndex, &p.Regime); err != nil {
			return nil, err
		}
		p.Method = model.Method(m)
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
