package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect selects the bind-parameter syntax.
type Dialect int

const (
	DialectMySQL Dialect = iota
	DialectPostgres
)

// querier is the subset of *sql.DB the gateway needs.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Gateway executes parameterized statements against the metadata store.
// Statements are written with ? placeholders; parameters are always bound, never spliced.
type Gateway struct {
	q       querier
	dialect Dialect
}

func NewGateway(q querier, d Dialect) *Gateway { return &Gateway{q: q, dialect: d} }

// RetrieveOneRow runs a query expected to return at most one row.
func (g *Gateway) RetrieveOneRow(ctx context.Context, query string, args ...any) *sql.Row {
	return g.q.QueryRowContext(ctx, g.rebind(query), args...)
}

// RetrieveAllRows runs a query and returns its rows in order. Callers must close them.
func (g *Gateway) RetrieveAllRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return g.q.QueryContext(ctx, g.rebind(query), args...)
}

// PerformAction runs a mutation and returns the number of affected rows.
func (g *Gateway) PerformAction(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := g.q.ExecContext(ctx, g.rebind(query), args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}

func (g *Gateway) rebind(query string) string {
	if g.dialect != DialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
