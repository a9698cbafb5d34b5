package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/oplog"
	"github.com/farxc/oplog/internal/sequence"
	"github.com/farxc/oplog/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config    config
	store     *store.Storage
	oplog     *oplog.Component
	seq       *sequence.Sequence
	logger    *logger.Logger
	startTime time.Time
}

type config struct {
	addr     string
	logLevel *logger.LogLevel
	db       dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

// route is one declared operation and where it is served.
type route struct {
	method  string
	pattern string
	level   logger.LogLevel
	op      sequence.Operation
}

func newApplication(cfg config, l *logger.Logger, registry *oplog.Registry, out io.Writer) *application {
	comp := oplog.New(oplog.Options{
		LogLevel: cfg.logLevel,
		Registry: registry,
		Output:   out,
		Logger:   l,
	})
	return &application{
		config:    cfg,
		oplog:     comp,
		seq:       sequence.New(comp, l),
		logger:    l,
		startTime: time.Now(),
	}
}

// logLevel sets the minimum level operations must be declared at to be logged.
func (app *application) logLevel(level logger.LogLevel) {
	app.oplog.SetLogLevel(level)
}

// useStore persists every logged invocation and exposes them over the API.
func (app *application) useStore(s *store.Storage) {
	app.store = s
	app.oplog.AddSink(s.Invocations)
}

func (app *application) routes() []route {
	routes := append(myControllerRoutes(), healthRoutes(app)...)
	if app.store != nil {
		routes = append(routes, invocationRoutes(app.store)...)
	}
	return routes
}

// declare attaches the log level of every served operation.
func (app *application) declare(routes []route) {
	reg := app.oplog.Registry()
	for _, rt := range routes {
		reg.Declare(rt.op.Owner, rt.op.Method, rt.level)
	}
}

func (app *application) mount() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	routes := app.routes()
	app.declare(routes)
	for _, rt := range routes {
		if err := app.seq.Mount(r, rt.method, rt.pattern, rt.op); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (app *application) run(ctx context.Context, mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Server", "started on %s", app.config.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.logger.Info("Server", "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// info mirrors the startup report of the application.
func (app *application) info() map[string]any {
	return map[string]any{
		"uptime_ms": time.Since(app.startTime).Milliseconds(),
		"addr":      app.config.addr,
		"log_level": app.oplog.LogLevel().String(),
	}
}
