package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories branch on.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// Constraint names referenced when classifying write failures.
const (
	UsersPrimaryKey     = "users_pkey"
	VotesCaseJurorKey   = "votes_case_id_juror_key"
	VotesCaseForeignKey = "votes_case_id_fkey"
)

// Migrate creates the users, cases and votes tables. Safe to run on every
// start.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// IsConstraintViolation reports whether err is a Postgres error with the
// given SQLSTATE code. A non-empty constraint also has to match.
func IsConstraintViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    username   TEXT PRIMARY KEY,
    password   TEXT NOT NULL,
    role       TEXT NOT NULL CHECK (role IN ('defendant', 'plaintiff', 'juror', 'judge')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cases (
    id             BIGSERIAL PRIMARY KEY,
    defendant_name TEXT NOT NULL,
    plaintiff_name TEXT NOT NULL,
    argument       TEXT NOT NULL,
    evidence       TEXT NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
    submitted_by   TEXT NOT NULL REFERENCES users (username),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cases_status ON cases (status);

CREATE TABLE IF NOT EXISTS votes (
    id         BIGSERIAL PRIMARY KEY,
    case_id    BIGINT NOT NULL,
    juror      TEXT NOT NULL REFERENCES users (username),
    verdict    TEXT NOT NULL CHECK (verdict IN ('guilty', 'not_guilty')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT votes_case_id_fkey FOREIGN KEY (case_id) REFERENCES cases (id),
    CONSTRAINT votes_case_id_juror_key UNIQUE (case_id, juror)
);
`
