package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/farxc/oplog/internal/oplog"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// InvocationStore persists logged invocations. It is an oplog.Sink.
type InvocationStore struct {
	db *sqlx.DB
}

// Invocation is a stored log entry.
type Invocation struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Request   string    `json:"request"`
	Owner     string    `json:"owner"`
	Method    string    `json:"method"`
	Args      []string  `json:"args"`
	Result    string    `json:"result"`
	ElapsedMs *float64  `json:"elapsed_ms,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}

type invocationRow struct {
	ID        int64           `db:"id"`
	Level     string          `db:"level"`
	Request   string          `db:"request"`
	Owner     string          `db:"owner"`
	Method    string          `db:"method"`
	Args      string          `db:"args"`
	Result    string          `db:"result"`
	ElapsedMs sql.NullFloat64 `db:"elapsed_ms"`
	LoggedAt  time.Time       `db:"logged_at"`
}

var schema = map[string]string{
	"postgres": `CREATE TABLE IF NOT EXISTS invocation_log (
		id         BIGSERIAL PRIMARY KEY,
		level      TEXT NOT NULL,
		request    TEXT NOT NULL,
		owner      TEXT NOT NULL,
		method     TEXT NOT NULL,
		args       TEXT NOT NULL,
		result     TEXT NOT NULL,
		elapsed_ms DOUBLE PRECISION,
		logged_at  TIMESTAMPTZ NOT NULL
	)`,
	"sqlite3": `CREATE TABLE IF NOT EXISTS invocation_log (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		level      TEXT NOT NULL,
		request    TEXT NOT NULL,
		owner      TEXT NOT NULL,
		method     TEXT NOT NULL,
		args       TEXT NOT NULL,
		result     TEXT NOT NULL,
		elapsed_ms REAL,
		logged_at  TIMESTAMP NOT NULL
	)`,
}

// Migrate creates the invocation_log table if it does not exist.
func (s *InvocationStore) Migrate(ctx context.Context) error {
	ddl, ok := schema[s.db.DriverName()]
	if !ok {
		return errors.Errorf("no invocation_log schema for driver %q", s.db.DriverName())
	}
	_, err := s.db.ExecContext(ctx, ddl)
	return errors.Wrap(err, "create invocation_log")
}

func (s *InvocationStore) Record(ctx context.Context, e oplog.Entry) error {
	args, err := json.Marshal(e.Args)
	if err != nil {
		return errors.Wrap(err, "encode args")
	}

	row := invocationRow{
		Level:    e.Level.String(),
		Request:  e.Request,
		Owner:    e.Owner,
		Method:   e.Method,
		Args:     string(args),
		Result:   e.Result,
		LoggedAt: e.LoggedAt.UTC(),
	}
	if e.ElapsedMs != nil {
		row.ElapsedMs = sql.NullFloat64{Float64: *e.ElapsedMs, Valid: true}
	}

	query := `INSERT INTO invocation_log (
		level,
		request,
		owner,
		method,
		args,
		result,
		elapsed_ms,
		logged_at
	) VALUES (
		:level,
		:request,
		:owner,
		:method,
		:args,
		:result,
		:elapsed_ms,
		:logged_at
	)`

	_, err = s.db.NamedExecContext(ctx, query, row)
	return errors.Wrapf(err, "record %s.%s", e.Owner, e.Method)
}

// GetLatest returns up to limit invocations, newest first.
func (s *InvocationStore) GetLatest(ctx context.Context, limit int) ([]Invocation, error) {
	query := s.db.Rebind(`SELECT id, level, request, owner, method, args, result, elapsed_ms, logged_at
		FROM invocation_log
		ORDER BY id DESC
		LIMIT ?`)

	var rows []invocationRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, errors.Wrap(err, "select invocation_log")
	}

	out := make([]Invocation, 0, len(rows))
	for _, row := range rows {
		inv := Invocation{
			ID:       row.ID,
			Level:    row.Level,
			Request:  row.Request,
			Owner:    row.Owner,
			Method:   row.Method,
			Result:   row.Result,
			LoggedAt: row.LoggedAt,
		}
		if err := json.Unmarshal([]byte(row.Args), &inv.Args); err != nil {
			return nil, errors.Wrapf(err, "decode args of invocation %d", row.ID)
		}
		if row.ElapsedMs.Valid {
			ms := row.ElapsedMs.Float64
			inv.ElapsedMs = &ms
		}
		out = append(out, inv)
	}
	return out, nil
}
