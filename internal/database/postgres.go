package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresConnector caches the process-wide Postgres pool.
type PostgresConnector = Connector[*sql.DB]

// NewPostgresConnector returns a connector for the given DATABASE_URL.
func NewPostgresConnector(dsn string) *PostgresConnector {
	return NewConnector("Postgres", dsn, DialPostgres, func(_ context.Context, db *sql.DB) error {
		return db.Close()
	})
}

// DialPostgres opens a pool and verifies it with a ping.
func DialPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(45 * time.Second)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// PingPostgres checks the pool can reach the server.
func PingPostgres(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}
