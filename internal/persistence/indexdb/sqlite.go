// Package indexdb keeps a small read-model of past generation runs in
// SQLite so layouts can be compared across runs without replaying the audit
// logs. It never feeds back into generation.
package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"plotworld/internal/testworld"
)

type RunIndex struct {
	db *sql.DB
}

func Open(path string) (*RunIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("indexdb: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &RunIndex{db: db}, nil
}

func (ix *RunIndex) Close() error { return ix.db.Close() }

func initPragmas(db *sql.DB) error {
	for _, p := range []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA busy_timeout=5000;`,
	} {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("indexdb: pragma %s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	created_at       TEXT NOT NULL,
	origin           TEXT NOT NULL,
	packed_w         INTEGER NOT NULL,
	packed_h         INTEGER NOT NULL,
	overall_bounds   TEXT NOT NULL,
	start_pos        TEXT NOT NULL,
	cleared_chunks   INTEGER NOT NULL,
	removed_entities INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_plots (
	run_id   TEXT NOT NULL,
	ord      INTEGER NOT NULL,
	plot_id  TEXT NOT NULL,
	origin   TEXT NOT NULL,
	bounds   TEXT NOT NULL,
	entities INTEGER NOT NULL,
	PRIMARY KEY (run_id, ord)
);
CREATE INDEX IF NOT EXISTS idx_run_plots_plot ON run_plots(plot_id);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("indexdb: init schema: %w", err)
	}
	return nil
}

func asJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// RecordRun stores a finished generation report and its positioned plots.
func (ix *RunIndex) RecordRun(ctx context.Context, rep *testworld.Report) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, origin, packed_w, packed_h,
			overall_bounds, start_pos, cleared_chunks, removed_entities)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID,
		rep.CreatedAt.UTC().Format(time.RFC3339Nano),
		asJSON(rep.Origin),
		rep.PackedW,
		rep.PackedH,
		asJSON(rep.OverallBounds),
		asJSON(rep.StartPos),
		rep.ClearedChunks,
		rep.RemovedEntities,
	)
	if err != nil {
		return fmt.Errorf("indexdb: insert run %s: %w", rep.RunID, err)
	}
	for i, p := range rep.Plots {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_plots (run_id, ord, plot_id, origin, bounds, entities)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rep.RunID, i, p.ID, asJSON(p.Origin), asJSON(p.Bounds), p.Entities,
		)
		if err != nil {
			return fmt.Errorf("indexdb: insert run plot %s/%s: %w", rep.RunID, p.ID, err)
		}
	}
	return tx.Commit()
}

type RunSummary struct {
	RunID     string
	CreatedAt string
	PackedW   int
	PackedH   int
	PlotCount int
}

// Runs lists recorded runs, newest first.
func (ix *RunIndex) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT r.run_id, r.created_at, r.packed_w, r.packed_h,
		       (SELECT COUNT(*) FROM run_plots p WHERE p.run_id = r.run_id)
		FROM runs r
		ORDER BY r.created_at DESC, r.run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.CreatedAt, &s.PackedW, &s.PackedH, &s.PlotCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RunPlots returns the positioned plots of one run in placement order.
func (ix *RunIndex) RunPlots(ctx context.Context, runID string) ([]testworld.PlotReport, error) {
	rows, err := ix.db.QueryContext(ctx, `
		SELECT plot_id, origin, bounds, entities
		FROM run_plots WHERE run_id = ? ORDER BY ord`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []testworld.PlotReport
	for rows.Next() {
		var p testworld.PlotReport
		var origin, bounds string
		if err := rows.Scan(&p.ID, &origin, &bounds, &p.Entities); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(origin), &p.Origin); err != nil {
			return nil, fmt.Errorf("indexdb: run %s plot %s origin: %w", runID, p.ID, err)
		}
		if err := json.Unmarshal([]byte(bounds), &p.Bounds); err != nil {
			return nil, fmt.Errorf("indexdb: run %s plot %s bounds: %w", runID, p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
