package aggregation

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Database is the part of pgxpool.Pool the reader queries through.
type Database interface {
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}
