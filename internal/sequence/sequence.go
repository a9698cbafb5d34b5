// Package sequence runs REST operations through parse, invoke, send or
// reject, and hands every outcome to the operation logger.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/oplog"
	"github.com/farxc/oplog/internal/response"
	"github.com/go-chi/chi/v5"
)

// InvokeFunc runs the operation with its resolved arguments.
type InvokeFunc func(ctx context.Context, args []any) (any, error)

// Operation is a declared method of an owner type, served over HTTP.
type Operation struct {
	Owner  string
	Method string
	Params ParamsFunc
	Invoke InvokeFunc
}

func (op Operation) String() string {
	return op.Owner + "." + op.Method
}

// HTTPError lets an operation choose the status it is rejected with.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Sequence is the request handling pipeline shared by all operations.
type Sequence struct {
	log        oplog.LogFn
	startTimer func() oplog.Timestamp
	registry   *oplog.Registry
	logger     *logger.Logger
}

func New(c *oplog.Component, l *logger.Logger) *Sequence {
	return &Sequence{
		log:        c.Action().Log,
		startTimer: c.Action().StartTimer,
		registry:   c.Registry(),
		logger:     l,
	}
}

// Handle serves one request for op and logs the outcome. The response is
// complete before logging starts; the returned error is the logging
// failure, which only happens for an undeclared operation.
func (s *Sequence) Handle(w http.ResponseWriter, r *http.Request, op Operation) error {
	start := s.startTimer()

	var result any
	args, err := op.parse(r)
	if err == nil {
		result, err = op.Invoke(r.Context(), args)
	}

	if err != nil {
		result = err
		s.reject(w, err)
	} else {
		s.send(w, result)
	}

	return s.log(r.Context(), oplog.Invocation{
		Request: r.URL.RequestURI(),
		Owner:   op.Owner,
		Method:  op.Method,
		Args:    args,
		Result:  result,
		Start:   &start,
	})
}

// Handler adapts op for a chi route. A logging configuration error is
// raised as a panic for middleware.Recoverer to report.
func (s *Sequence) Handler(op Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Handle(w, r, op); err != nil {
			if s.logger != nil {
				s.logger.Error("Sequence", "%s %s: %v", r.Method, r.URL.Path, err)
			}
			panic(err)
		}
	}
}

// Mount registers op on the router. Operations without a log declaration
// are refused so the wiring bug shows up at startup.
func (s *Sequence) Mount(r chi.Router, method, pattern string, op Operation) error {
	if op.Invoke == nil {
		return fmt.Errorf("sequence: %s has no invoke function", op)
	}
	if _, err := s.registry.Lookup(op.Owner, op.Method); err != nil {
		return err
	}
	r.Method(method, pattern, s.Handler(op))
	if s.logger != nil {
		s.logger.Debug("Sequence", "mounted %s %s -> %s", method, pattern, op)
	}
	return nil
}

func (op Operation) parse(r *http.Request) ([]any, error) {
	if op.Params == nil {
		return nil, nil
	}
	return op.Params(r)
}

func (s *Sequence) send(w http.ResponseWriter, result any) {
	var err error
	switch v := result.(type) {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case string:
		err = response.WriteText(w, http.StatusOK, v)
	default:
		err = response.WriteJSON(w, http.StatusOK, v)
	}
	if err != nil && s.logger != nil {
		s.logger.Warn("Sequence", "write response: %v", err)
	}
}

func (s *Sequence) reject(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("Sequence", "operation failed: %v", err)
	}
	response.WriteJSONError(w, status, err.Error())
}

func statusOf(err error) int {
	var (
		paramErr *ParamError
		httpErr  *HTTPError
	)
	switch {
	case errors.As(err, &paramErr):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
