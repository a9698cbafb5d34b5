package store

import (
	"context"

	"github.com/farxc/oplog/internal/oplog"
	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Invocations interface {
		Record(ctx context.Context, e oplog.Entry) error
		GetLatest(ctx context.Context, limit int) ([]Invocation, error)
		Summarize(ctx context.Context) ([]OperationSummary, error)
		Migrate(ctx context.Context) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Invocations: &InvocationStore{db: db},
	}
}
