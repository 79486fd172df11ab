package model

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of a database connection used by repositories.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Conn is a connection leased from a pool. Release must be called exactly once
// by the holder; further calls are no-ops.
type Conn interface {
	Querier
	Release()
}

// ConnPool lends connections to request handlers.
type ConnPool interface {
	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
	Stat() PoolStat
}

// PoolStat is a snapshot of pool bookkeeping.
type PoolStat struct {
	Acquired int32
	Idle     int32
	Total    int32
	Max      int32
}
