package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

// Store executes read-only aggregation queries against the interaction
// tables. It never writes; every operation is idempotent.
type Store struct {
	Pool         *pgxpool.Pool
	QueryTimeout time.Duration
}

func New(ctx context.Context, databaseURL string, queryTimeout time.Duration) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if queryTimeout <= 0 {
		queryTimeout = 15 * time.Second
	}
	return &Store{Pool: pool, QueryTimeout: queryTimeout}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) deadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.QueryTimeout)
}

// dataErr maps a driver error to the DataAccessError taxonomy. Retry
// policy, if any, belongs to the caller.
func dataErr(op string, err error) error {
	kind := models.DataAccessConnection
	if errors.Is(err, context.DeadlineExceeded) {
		kind = models.DataAccessTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01", "42703", "42804", "22P02":
			kind = models.DataAccessSchema
		case "57014":
			kind = models.DataAccessTimeout
		}
	}
	return &models.DataAccessError{Kind: kind, Op: op, Err: err}
}
