package store

import (
	"context"
	"testing"
	"time"

	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/oplog"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *InvocationStore {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// one connection, otherwise every connection opens its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s := NewStorage(db).Invocations.(*InvocationStore)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func entry(owner, method string, elapsed *float64) oplog.Entry {
	return oplog.Entry{
		Level:     logger.LevelWarn,
		Request:   "/?name=test",
		Owner:     owner,
		Method:    method,
		Args:      []string{"test", "2"},
		Result:    `{"msg":"Hi test"}`,
		ElapsedMs: elapsed,
		LoggedAt:  time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func ms(v float64) *float64 { return &v }

func TestRecordAndGetLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, entry("MyController", "hello", nil)))
	require.NoError(t, s.Record(ctx, entry("MyController", "helloName", ms(12.5))))

	got, err := s.GetLatest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	newest := got[0]
	assert.Equal(t, "helloName", newest.Method)
	assert.Equal(t, "WARN", newest.Level)
	assert.Equal(t, []string{"test", "2"}, newest.Args)
	assert.Equal(t, `{"msg":"Hi test"}`, newest.Result)
	require.NotNil(t, newest.ElapsedMs)
	assert.Equal(t, 12.5, *newest.ElapsedMs)
	assert.True(t, newest.LoggedAt.Equal(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)))

	assert.Nil(t, got[1].ElapsedMs)

	limited, err := s.GetLatest(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, e := range []oplog.Entry{
		entry("A", "m", ms(10)),
		entry("A", "m", ms(30)),
		entry("A", "m", ms(20)),
		entry("A", "m", nil),
		entry("B", "n", nil),
	} {
		require.NoError(t, s.Record(ctx, e))
	}

	got, err := s.Summarize(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, OperationSummary{Owner: "A", Method: "m", Calls: 4, Timed: 3, MeanMs: 20, P95Ms: 30, MaxMs: 30}, got[0])
	assert.Equal(t, OperationSummary{Owner: "B", Method: "n", Calls: 1}, got[1])
}

func TestStoreIsASink(t *testing.T) {
	s := newTestStore(t)
	var buf nopWriter
	level := logger.LevelDebug
	c := oplog.New(oplog.Options{
		LogLevel: &level,
		Registry: oplog.NewRegistry(),
		Output:   buf,
		Sinks:    []oplog.Sink{s},
	})
	c.Registry().Register("MyController", "hello", logger.LevelInfo)

	require.NoError(t, c.Action().Log(context.Background(), oplog.Invocation{
		Request: "/",
		Owner:   "MyController",
		Method:  "hello",
		Result:  "Hi anonymous",
	}))

	got, err := s.GetLatest(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "INFO", got[0].Level)
	assert.Equal(t, "Hi anonymous", got[0].Result)
	assert.Empty(t, got[0].Args)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
