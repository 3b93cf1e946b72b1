package scan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/torsionwell/connection"
	"github.com/katalvlaran/torsionwell/curvature"
	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/stability"
)

// Store persists sweep runs in a SQLite database. Construct with
// OpenStore; Close releases the handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	r_min      REAL NOT NULL,
	r_max      REAL NOT NULL,
	eps_min    REAL NOT NULL,
	eps_max    REAL NOT NULL,
	row_count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sweep_rows (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	idx           INTEGER NOT NULL,
	family        TEXT NOT NULL,
	mode          TEXT NOT NULL,
	variant       TEXT NOT NULL,
	eta           REAL NOT NULL,
	v             REAL NOT NULL,
	theta_ny      REAL NOT NULL,
	kappa         REAL NOT NULL,
	circumference REAL NOT NULL,
	alpha         REAL NOT NULL,
	r             REAL NOT NULL,
	eps           REAL NOT NULL,
	value         REAL NOT NULL,
	converged     INTEGER NOT NULL,
	iterations    INTEGER NOT NULL,
	class         TEXT NOT NULL,
	error         TEXT NOT NULL,
	PRIMARY KEY (run_id, idx)
);`

// OpenStore opens (creating if needed) the database at path and applies
// the schema. Pass ":memory:" for an ephemeral store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scan: open store: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("scan: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// RunInfo summarizes one persisted run.
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	Bounds    stability.Bounds
	Rows      int
}

// SaveRun persists the rows under a fresh run id and returns it. The
// write is transactional: a failed insert leaves no partial run behind.
func (s *Store) SaveRun(ctx context.Context, b stability.Bounds, rows []Row) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("scan: begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, r_min, r_max, eps_min, eps_max, row_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano),
		b.RMin, b.RMax, b.EpsMin, b.EpsMax, len(rows))
	if err != nil {
		return "", fmt.Errorf("scan: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sweep_rows (run_id, idx, family, mode, variant,
			eta, v, theta_ny, kappa, circumference, alpha,
			r, eps, value, converged, iterations, class, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("scan: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		c := row.Tuple.Couplings
		_, err = stmt.ExecContext(ctx,
			id, row.Index,
			row.Tuple.Family.String(), row.Tuple.Mode.String(), row.Tuple.Variant.String(),
			c.Eta, c.V, c.ThetaNY, c.Kappa, c.Circumference, c.Alpha,
			row.Result.R, row.Result.Eps, row.Result.Value,
			row.Result.Converged, row.Result.Iterations,
			row.Class.String(), row.Err)
		if err != nil {
			return "", fmt.Errorf("scan: insert row %d: %w", row.Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("scan: commit save: %w", err)
	}

	return id, nil
}

// LoadRun reads a persisted run back, rows in index order.
//
// Errors: ErrRunNotFound.
func (s *Store) LoadRun(ctx context.Context, id string) (stability.Bounds, []Row, error) {
	var b stability.Bounds
	err := s.db.QueryRowContext(ctx,
		`SELECT r_min, r_max, eps_min, eps_max FROM runs WHERE id = ?`, id).
		Scan(&b.RMin, &b.RMax, &b.EpsMin, &b.EpsMax)
	if errors.Is(err, sql.ErrNoRows) {
		return stability.Bounds{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return stability.Bounds{}, nil, fmt.Errorf("scan: load run: %w", err)
	}

	rs, err := s.db.QueryContext(ctx,
		`SELECT idx, family, mode, variant,
			eta, v, theta_ny, kappa, circumference, alpha,
			r, eps, value, converged, iterations, class, error
		 FROM sweep_rows WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return stability.Bounds{}, nil, fmt.Errorf("scan: query rows: %w", err)
	}
	defer rs.Close()

	var rows []Row
	for rs.Next() {
		row, err := scanRow(rs)
		if err != nil {
			return stability.Bounds{}, nil, err
		}
		rows = append(rows, row)
	}
	if err = rs.Err(); err != nil {
		return stability.Bounds{}, nil, fmt.Errorf("scan: iterate rows: %w", err)
	}

	return b, rows, nil
}

// scanRow rebuilds one Row, resolving the stored enum names.
func scanRow(rs *sql.Rows) (Row, error) {
	var (
		row                  Row
		family, mode, varian string
		class                string
	)
	c := &row.Tuple.Couplings
	err := rs.Scan(&row.Index, &family, &mode, &varian,
		&c.Eta, &c.V, &c.ThetaNY, &c.Kappa, &c.Circumference, &c.Alpha,
		&row.Result.R, &row.Result.Eps, &row.Result.Value,
		&row.Result.Converged, &row.Result.Iterations,
		&class, &row.Err)
	if err != nil {
		return Row{}, fmt.Errorf("scan: scan row: %w", err)
	}

	if row.Tuple.Family, err = geometry.ParseFamily(family); err != nil {
		return Row{}, err
	}
	if row.Tuple.Mode, err = connection.ParseMode(mode); err != nil {
		return Row{}, err
	}
	if row.Tuple.Variant, err = curvature.ParseVariant(varian); err != nil {
		return Row{}, err
	}
	if row.Class, err = stability.ParseClass(class); err != nil {
		return Row{}, err
	}

	return row, nil
}

// ListRuns returns every persisted run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, r_min, r_max, eps_min, eps_max, row_count
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("scan: list runs: %w", err)
	}
	defer rs.Close()

	var infos []RunInfo
	for rs.Next() {
		var (
			info    RunInfo
			created string
		)
		if err = rs.Scan(&info.ID, &created,
			&info.Bounds.RMin, &info.Bounds.RMax,
			&info.Bounds.EpsMin, &info.Bounds.EpsMax, &info.Rows); err != nil {
			return nil, fmt.Errorf("scan: scan run info: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("scan: parse run timestamp: %w", err)
		}
		infos = append(infos, info)
	}
	if err = rs.Err(); err != nil {
		return nil, fmt.Errorf("scan: iterate runs: %w", err)
	}

	return infos, nil
}

// DeleteRun removes a run and its rows in one transaction: a failure
// rolls back, never leaving orphaned rows or a half-deleted run.
//
// Errors: ErrRunNotFound.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("scan: begin delete: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("scan: delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	// the cascade only fires under the foreign_keys pragma, so the rows
	// go explicitly
	if _, err = tx.ExecContext(ctx, `DELETE FROM sweep_rows WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("scan: delete rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("scan: commit delete: %w", err)
	}

	return nil
}
