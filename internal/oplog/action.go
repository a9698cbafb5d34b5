package oplog

import (
	"context"
	"io"
	"time"

	"github.com/farxc/oplog/internal/logger"
)

// Invocation is what the dispatcher knows about one completed operation.
// Result holds either the returned value or the error the operation failed with.
type Invocation struct {
	Request string
	Owner   string
	Method  string
	Args    []any
	Result  any
	Start   *Timestamp
}

// LogFn is the logging callable handed to the request sequence.
type LogFn func(ctx context.Context, inv Invocation) error

// Sink receives every entry that passed the level filter, after the
// console line was written.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}

// Action decides whether a completed invocation is logged and writes the line.
type Action struct {
	registry *Registry
	level    *LevelConfig
	timer    *Timer
	out      io.Writer
	sinks    []Sink
	log      *logger.Logger
	now      func() time.Time
}

// Log records inv. It fails only when the operation was never declared;
// a sink failure is reported on the service logger instead.
func (a *Action) Log(ctx context.Context, inv Invocation) error {
	declared, err := a.registry.Lookup(inv.Owner, inv.Method)
	if err != nil {
		return err
	}
	if !ShouldLog(declared, a.level.Get()) {
		return nil
	}

	entry := Entry{
		Level:    declared,
		Request:  inv.Request,
		Owner:    inv.Owner,
		Method:   inv.Method,
		Args:     RenderArgs(inv.Args),
		Result:   RenderResult(inv.Result),
		LoggedAt: a.now(),
	}
	if inv.Start != nil && inv.Start.Valid() {
		ms := a.timer.ElapsedMs(*inv.Start)
		entry.ElapsedMs = &ms
	}

	line := Colorize(declared, Format(entry)) + "\n"
	if _, err := io.WriteString(a.out, line); err != nil && a.log != nil {
		a.log.Error("OpLog", "write %s.%s: %v", inv.Owner, inv.Method, err)
	}

	// sinks still record invocations whose request was cancelled or timed out
	sinkCtx := context.WithoutCancel(ctx)
	for _, sink := range a.sinks {
		if err := sink.Record(sinkCtx, entry); err != nil && a.log != nil {
			a.log.Error("OpLog", "sink rejected %s.%s: %v", inv.Owner, inv.Method, err)
		}
	}
	return nil
}

// StartTimer returns the timestamp to pass back as Invocation.Start.
func (a *Action) StartTimer() Timestamp {
	return a.timer.Now()
}
