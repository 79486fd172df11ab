package postgres

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/aksara-server/internal/config"
	"github.com/dtroode/aksara-server/internal/model"
)

var _ model.ConnPool = (*Connection)(nil)

// Connection owns the bounded set of pooled connections to PostgreSQL and
// lends them out one request at a time.
type Connection struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	err            error
}

// NewConnection parses cfg and opens a lazily connecting pool.
// An empty DSN yields an error wrapping model.ErrNotConfigured.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	if !cfg.HasDSN() {
		return nil, fmt.Errorf("POSTGRES_DATABASE_URL is not set: %w", model.ErrNotConfigured)
	}

	conf, err := parseConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	return &Connection{
		pool:           pool,
		acquireTimeout: cfg.AcquireTimeout,
	}, nil
}

// NewUnconfigured returns a Connection that fails every Acquire and Ping with err.
// The process can keep serving and report the configuration problem per request.
func NewUnconfigured(err error) *Connection {
	return &Connection{err: err}
}

func parseConfig(cfg config.Database) (*pgxpool.Config, error) {
	conf, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		conf.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		conf.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		conf.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		conf.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	if cfg.RequireTLS {
		requireTLS(&conf.ConnConfig.Config)
	}
	if cfg.TLSInsecureSkipVerify {
		skipVerify(&conf.ConnConfig.Config)
	}

	return conf, nil
}

// requireTLS forces an encrypted channel: a plaintext primary gets a TLS config
// and plaintext fallbacks (sslmode=prefer/allow) are dropped.
func requireTLS(cc *pgconn.Config) {
	if cc.TLSConfig == nil {
		cc.TLSConfig = &tls.Config{
			ServerName: cc.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	fallbacks := make([]*pgconn.FallbackConfig, 0, len(cc.Fallbacks))
	for _, fb := range cc.Fallbacks {
		if fb.TLSConfig != nil {
			fallbacks = append(fallbacks, fb)
		}
	}
	cc.Fallbacks = fallbacks
}

func skipVerify(cc *pgconn.Config) {
	relax := func(tc *tls.Config) {
		if tc == nil {
			return
		}
		tc.InsecureSkipVerify = true
		tc.VerifyPeerCertificate = nil
	}

	relax(cc.TLSConfig)
	for _, fb := range cc.Fallbacks {
		relax(fb.TLSConfig)
	}
}

// Acquire leases a connection, waiting at most the configured acquire timeout.
// Any failure is reported as model.ErrPoolUnavailable unless the pool is unconfigured.
func (c *Connection) Acquire(ctx context.Context) (model.Conn, error) {
	conn, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}

	return &lease{conn: conn}, nil
}

func (c *Connection) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.pool == nil {
		return nil, model.ErrNotConfigured
	}

	if c.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.acquireTimeout)
		defer cancel()
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrPoolUnavailable, err)
	}

	return conn, nil
}

// Ping leases a connection, round-trips to the server and releases it.
func (c *Connection) Ping(ctx context.Context) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", model.ErrPoolUnavailable, err)
	}

	return nil
}

// Stat returns a snapshot of the pool counters.
func (c *Connection) Stat() model.PoolStat {
	if c.pool == nil {
		return model.PoolStat{}
	}

	s := c.pool.Stat()
	return model.PoolStat{
		Acquired: s.AcquiredConns(),
		Idle:     s.IdleConns(),
		Total:    s.TotalConns(),
		Max:      s.MaxConns(),
	}
}

// Close closes all pooled connections.
func (c *Connection) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

// lease is a pooled connection handed to exactly one operation.
type lease struct {
	conn *pgxpool.Conn
	once sync.Once
}

func (l *lease) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return l.conn.QueryRow(ctx, sql, args...)
}

func (l *lease) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return l.conn.Exec(ctx, sql, args...)
}

// Release returns the connection to the pool. Calls after the first are no-ops.
func (l *lease) Release() {
	l.once.Do(l.conn.Release)
}
