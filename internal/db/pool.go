package db

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool wraps the single long-lived connection used by the catalog.
type Pool struct {
	*sql.DB
	dialect Dialect
}

// Connect opens the relational store and verifies connectivity.
// The catalog is a single-operator tool, so exactly one connection is kept open.
func Connect(ctx context.Context, cfg Config) (*Pool, error) {
	sdb, err := sql.Open(cfg.DriverName(), cfg.ConnString())
	if err != nil {
		return nil, err
	}
	sdb.SetMaxOpenConns(1)
	sdb.SetMaxIdleConns(1)
	sdb.SetConnMaxLifetime(0)

	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return nil, err
	}
	return &Pool{DB: sdb, dialect: cfg.Dialect()}, nil
}

// Gateway returns a query gateway bound to the pool.
func (p *Pool) Gateway() *Gateway {
	return NewGateway(p.DB, p.dialect)
}

// Close closes the underlying connection.
func (p *Pool) Close() error {
	if p != nil && p.DB != nil {
		return p.DB.Close()
	}
	return nil
}
