// Package runlog records training runs in a local SQLite database, so that
// experiments can be compared after the fact without digging through
// terminal scrollback.
package runlog

import (
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Run is one recorded training run.
type Run struct {
	ID         uuid.UUID
	Experiment string
	StartedAt  time.Time
	FinishedAt time.Time

	// FinalCost is the last cost reported for the run; NaN if the run was
	// never finished.
	FinalCost float64

	Notes string
}

// Store is a handle on the run database. It is safe to keep one open across
// multiple runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open database %q\n", path)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs(
			id TEXT PRIMARY KEY,
			experiment TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER,
			final_cost REAL,
			notes TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "Failed to create runs table in %q\n", path)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin records the start of a run of the named experiment, returning its
// id for the later call to Finish.
func (s *Store) Begin(experiment, notes string) (uuid.UUID, error) {
	id := uuid.New()

	_, err := s.db.Exec("INSERT INTO runs(id, experiment, started_at, notes) VALUES(?,?,?,?)",
		id.String(), experiment, time.Now().Unix(), notes)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "Failed to insert run for experiment %q\n", experiment)
	}

	return id, nil
}

// Finish records the end of the run with the given id, along with its final
// cost.
func (s *Store) Finish(id uuid.UUID, finalCost float64) error {
	res, err := s.db.Exec("UPDATE runs SET finished_at = ?, final_cost = ? WHERE id = ?",
		time.Now().Unix(), finalCost, id.String())
	if err != nil {
		return errors.Wrapf(err, "Failed to update run %v\n", id)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "Failed to check update of run %v\n", id)
	} else if n == 0 {
		return errors.Errorf("No run with id %v\n", id)
	}

	return nil
}

// List returns the recorded runs, most recent first. If experiment is not
// "", only runs of that experiment are returned.
func (s *Store) List(experiment string) ([]Run, error) {
	query := "SELECT id, experiment, started_at, finished_at, final_cost, notes FROM runs"
	args := []interface{}{}
	if experiment != "" {
		query += " WHERE experiment = ?"
		args = append(args, experiment)
	}
	query += " ORDER BY started_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to query runs\n")
	}

	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			idStr    string
			started  int64
			finished sql.NullInt64
			cost     sql.NullFloat64
		)

		if err := rows.Scan(&idStr, &r.Experiment, &started, &finished, &cost, &r.Notes); err != nil {
			return nil, errors.Wrapf(err, "Failed to scan run row\n")
		}

		r.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, errors.Wrapf(err, "Run has malformed id %q\n", idStr)
		}

		r.StartedAt = time.Unix(started, 0)
		if finished.Valid {
			r.FinishedAt = time.Unix(finished.Int64, 0)
		}

		if cost.Valid {
			r.FinalCost = cost.Float64
		} else {
			r.FinalCost = math.NaN()
		}

		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "Failed while iterating runs\n")
	}

	return runs, nil
}
