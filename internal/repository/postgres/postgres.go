package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes mapped onto domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

// DatabaseProvider hands out the shared pool. *database.PostgresConnector implements it.
type DatabaseProvider interface {
	Acquire(ctx context.Context) (*sql.DB, error)
}

// StaticDB wraps an already opened pool as a DatabaseProvider.
type StaticDB struct {
	DB *sql.DB
}

func (s StaticDB) Acquire(context.Context) (*sql.DB, error) {
	return s.DB, nil
}

func pqCode(err error) string {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return string(perr.Code)
	}
	return ""
}
