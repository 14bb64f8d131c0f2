package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/sport"
	"github.com/javy001/trainingplanner/pkg/metrics"
)

const createWorkoutsTable = `
CREATE TABLE IF NOT EXISTS workouts (
	id                 TEXT PRIMARY KEY,
	date               TIMESTAMPTZ NOT NULL,
	sport              TEXT NOT NULL,
	duration_hours     DOUBLE PRECISION NOT NULL DEFAULT 0,
	distance_miles     DOUBLE PRECISION NOT NULL DEFAULT 0,
	notes              TEXT NOT NULL DEFAULT '',
	external_source_id TEXT NOT NULL DEFAULT '',
	seq                BIGSERIAL
);
CREATE INDEX IF NOT EXISTS workouts_external_source_id_idx
	ON workouts (external_source_id) WHERE external_source_id <> '';
`

const workoutColumns = `id, date, sport, duration_hours, distance_miles, notes, external_source_id`

// PostgresStore is a Store backed by a pgx connection pool. Insertion
// order is preserved through a sequence column so the matcher sees the
// same candidate order as the in-memory backend.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the given DSN and ensures the schema
// exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	const op = "postgres.NewPostgresStore"

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := pool.Exec(ctx, createWorkoutsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// ListWorkouts returns all workouts ordered by insertion.
func (s *PostgresStore) ListWorkouts(ctx context.Context) ([]model.Workout, error) {
	const op = "postgres.ListWorkouts"

	start := time.Now()

	rows, err := s.pool.Query(ctx,
		`SELECT `+workoutColumns+` FROM workouts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []model.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))

	return out, nil
}

// GetWorkout returns the workout with the given ID.
func (s *PostgresStore) GetWorkout(ctx context.Context, id string) (model.Workout, error) {
	const op = "postgres.GetWorkout"

	row := s.pool.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = $1`, id)

	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Workout{}, fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
		}
		return model.Workout{}, fmt.Errorf("%s: %w", op, err)
	}

	return w, nil
}

// Insert stores a new workout.
func (s *PostgresStore) Insert(ctx context.Context, w model.Workout) (model.Workout, error) {
	const op = "postgres.Insert"

	start := time.Now()

	stored, err := insertWorkout(ctx, s.pool, w)
	if err != nil {
		return model.Workout{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateWorkoutCount(s.Count(ctx))

	return stored, nil
}

// Update applies the set fields to an existing workout.
func (s *PostgresStore) Update(ctx context.Context, id string, fields model.WorkoutUpdate) (model.Workout, error) {
	const op = "postgres.Update"

	start := time.Now()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Workout{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	w, err := updateWorkout(ctx, tx, id, fields)
	if err != nil {
		return model.Workout{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Workout{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))

	return w, nil
}

// Delete removes the workout with the given ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	const op = "postgres.Delete"

	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w: %s", op, ErrNotFound, id)
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateWorkoutCount(s.Count(ctx))

	return nil
}

// ApplyUpserts applies a reconciliation batch in a single transaction.
func (s *PostgresStore) ApplyUpserts(ctx context.Context, upserts []model.Upsert) error {
	const op = "postgres.ApplyUpserts"

	start := time.Now()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range upserts {
		switch u.Kind {
		case model.UpsertInsert:
			if _, err := insertWorkout(ctx, tx, u.Workout); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		case model.UpsertUpdate:
			if _, err := updateWorkout(ctx, tx, u.ID, u.Fields); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateWorkoutCount(s.Count(ctx))

	return nil
}

// Count returns the number of stored workouts, or 0 on query failure.
func (s *PostgresStore) Count(ctx context.Context) int {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&n); err != nil {
		return 0
	}

	return n
}

// execer is the subset of pgx shared by a pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertWorkout(ctx context.Context, q execer, w model.Workout) (model.Workout, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.Normalize()

	_, err := q.Exec(ctx,
		`INSERT INTO workouts (id, date, sport, duration_hours, distance_miles, notes, external_source_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.Date, w.Sport.String(), w.DurationHours, w.DistanceMiles, w.Notes, w.ExternalSourceID)
	if err != nil {
		return model.Workout{}, err
	}

	return w, nil
}

func updateWorkout(ctx context.Context, tx pgx.Tx, id string, fields model.WorkoutUpdate) (model.Workout, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = $1 FOR UPDATE`, id)

	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Workout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return model.Workout{}, err
	}

	fields.Apply(&w)
	w.Normalize()

	_, err = tx.Exec(ctx,
		`UPDATE workouts
		 SET date = $2, sport = $3, duration_hours = $4, distance_miles = $5,
		     notes = $6, external_source_id = $7
		 WHERE id = $1`,
		w.ID, w.Date, w.Sport.String(), w.DurationHours, w.DistanceMiles, w.Notes, w.ExternalSourceID)
	if err != nil {
		return model.Workout{}, err
	}

	return w, nil
}

func scanWorkout(row pgx.Row) (model.Workout, error) {
	var (
		w         model.Workout
		sportName string
	)

	err := row.Scan(&w.ID, &w.Date, &sportName, &w.DurationHours,
		&w.DistanceMiles, &w.Notes, &w.ExternalSourceID)
	if err != nil {
		return model.Workout{}, err
	}

	w.Sport = sport.FromName(sportName)
	w.Normalize()

	return w, nil
}
