// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store checkpoints classification runs in SQLite so completed
// tiers survive an interrupted evaluation.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/contriboss/observe-go"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	experiment   TEXT NOT NULL,
	source       TEXT NOT NULL,
	started_at   TEXT NOT NULL,
	finished_at  TEXT,
	status       TEXT NOT NULL,
	error        TEXT
);

CREATE INDEX IF NOT EXISTS runs_experiment ON runs(experiment, started_at);

CREATE TABLE IF NOT EXISTS tier_stats (
	run_id               TEXT NOT NULL,
	arity                INTEGER NOT NULL,
	valid_configurations TEXT NOT NULL,
	features             INTEGER NOT NULL,
	pfas                 INTEGER NOT NULL,
	valid                INTEGER NOT NULL,
	invalid              INTEGER NOT NULL,
	direct               INTEGER NOT NULL,
	indirect             INTEGER NOT NULL,
	unobservable         INTEGER NOT NULL,
	rejected             INTEGER NOT NULL,
	elapsed_ns           INTEGER NOT NULL,
	PRIMARY KEY (run_id, arity),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one evaluation of an experiment.
type Run struct {
	ID         string
	Experiment string
	// Source is the model the universe was built from: a feature model
	// base path or a measurement table.
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Error      string
}

// ErrRunNotFound is returned for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Store persists runs and their per-tier statistics in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Runs of parallel experiments share one connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun records a new running evaluation.
func (s *Store) BeginRun(experiment, source string) (Run, error) {
	run := Run{
		ID:         uuid.New().String(),
		Experiment: experiment,
		Source:     source,
		StartedAt:  time.Now().UTC(),
		Status:     StatusRunning,
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, experiment, source, started_at, status) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Experiment, run.Source, run.StartedAt.Format(time.RFC3339Nano), run.Status,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// SaveTier stores the statistics of a completed tier, replacing an earlier
// checkpoint of the same arity.
func (s *Store) SaveTier(runID string, stats observe.TierStats) error {
	valid := "0"
	if stats.ValidConfigurations != nil {
		valid = stats.ValidConfigurations.String()
	}
	_, err := s.db.Exec(
		`INSERT INTO tier_stats (run_id, arity, valid_configurations, features, pfas, valid, invalid,
		                         direct, indirect, unobservable, rejected, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id, arity) DO UPDATE SET
		   valid_configurations = excluded.valid_configurations,
		   features = excluded.features,
		   pfas = excluded.pfas,
		   valid = excluded.valid,
		   invalid = excluded.invalid,
		   direct = excluded.direct,
		   indirect = excluded.indirect,
		   unobservable = excluded.unobservable,
		   rejected = excluded.rejected,
		   elapsed_ns = excluded.elapsed_ns`,
		runID, stats.Arity, valid, stats.Features, stats.PFAs, stats.Valid, stats.Invalid,
		stats.Direct, stats.Indirect, stats.Unobservable, stats.Rejected, int64(stats.Elapsed),
	)
	if err != nil {
		return fmt.Errorf("save tier %d of run %s: %w", stats.Arity, runID, err)
	}
	return nil
}

// FinishRun marks a run completed, or failed when runErr is non-nil.
func (s *Store) FinishRun(runID string, runErr error) error {
	status, message := StatusCompleted, ""
	if runErr != nil {
		status, message = StatusFailed, runErr.Error()
	}
	res, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ?, error = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), status, message, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// Run returns a single run by id.
func (s *Store) Run(runID string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT run_id, experiment, source, started_at, finished_at, status, error FROM runs WHERE run_id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
	}
	return run, err
}

// Runs lists the runs of an experiment, newest first. An empty experiment
// lists every run.
func (s *Store) Runs(experiment string) ([]Run, error) {
	query := `SELECT run_id, experiment, source, started_at, finished_at, status, error FROM runs`
	var args []any
	if experiment != "" {
		query += ` WHERE experiment = ?`
		args = append(args, experiment)
	}
	query += ` ORDER BY started_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Tiers returns the checkpointed tiers of a run in ascending arity.
func (s *Store) Tiers(runID string) ([]observe.TierStats, error) {
	var experiment string
	if err := s.db.QueryRow(`SELECT experiment FROM runs WHERE run_id = ?`, runID).Scan(&experiment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrRunNotFound)
		}
		return nil, fmt.Errorf("query run: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT arity, valid_configurations, features, pfas, valid, invalid, direct, indirect,
		        unobservable, rejected, elapsed_ns
		 FROM tier_stats WHERE run_id = ? ORDER BY arity`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tiers: %w", err)
	}
	defer rows.Close()

	var tiers []observe.TierStats
	for rows.Next() {
		stats := observe.TierStats{Experiment: experiment}
		var valid string
		var elapsed int64
		if err := rows.Scan(&stats.Arity, &valid, &stats.Features, &stats.PFAs, &stats.Valid, &stats.Invalid,
			&stats.Direct, &stats.Indirect, &stats.Unobservable, &stats.Rejected, &elapsed); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		count, ok := new(big.Int).SetString(valid, 10)
		if !ok {
			return nil, fmt.Errorf("tier %d: malformed configuration count %q", stats.Arity, valid)
		}
		stats.ValidConfigurations = count
		stats.Elapsed = time.Duration(elapsed)
		tiers = append(tiers, stats)
	}
	return tiers, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var started string
	var finished, message sql.NullString
	if err := row.Scan(&run.ID, &run.Experiment, &run.Source, &started, &finished, &run.Status, &message); err != nil {
		return Run{}, err
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	if finished.Valid {
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
	}
	run.Error = message.String
	return run, nil
}
