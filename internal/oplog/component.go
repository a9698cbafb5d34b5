// Package oplog logs completed REST operations at the level each
// operation was declared with, filtered by a process-wide minimum level.
//
// Operations are declared once during startup:
//
//	c := oplog.New(oplog.Options{})
//	c.Registry().Declare("MyController", "hello", logger.LevelInfo)
//	c.SetLogLevel(logger.LevelInfo)
//
// and the request sequence calls c.Action().Log after every invocation.
package oplog

import (
	"io"
	"os"
	"time"

	"github.com/farxc/oplog/internal/logger"
)

// Options configures a Component. Zero values select the defaults.
type Options struct {
	// LogLevel is the initial configured minimum; nil means DefaultLevel.
	LogLevel *logger.LogLevel
	Registry *Registry
	Output   io.Writer
	Clock    func() time.Duration
	Sinks    []Sink
	Logger   *logger.Logger
}

// Component bundles the registry, the configured level, the timer and the
// action bound to them.
type Component struct {
	registry *Registry
	level    *LevelConfig
	timer    *Timer
	action   *Action
}

func New(opts Options) *Component {
	c := &Component{
		registry: opts.Registry,
		level:    NewLevelConfig(DefaultLevel),
		timer:    NewTimer(opts.Clock),
	}
	if c.registry == nil {
		c.registry = DefaultRegistry
	}
	if opts.LogLevel != nil {
		c.SetLogLevel(*opts.LogLevel)
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	c.action = &Action{
		registry: c.registry,
		level:    c.level,
		timer:    c.timer,
		out:      out,
		sinks:    opts.Sinks,
		log:      opts.Logger,
		now:      time.Now,
	}
	return c
}

// SetLogLevel overwrites the configured minimum. It takes effect on the
// next logged invocation.
func (c *Component) SetLogLevel(level logger.LogLevel) {
	c.level.Set(level)
}

func (c *Component) LogLevel() logger.LogLevel {
	return c.level.Get()
}

func (c *Component) Registry() *Registry {
	return c.registry
}

func (c *Component) Action() *Action {
	return c.action
}

// AddSink attaches a sink. Call it before serving traffic.
func (c *Component) AddSink(s Sink) {
	c.action.sinks = append(c.action.sinks, s)
}
