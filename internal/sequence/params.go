package sequence

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ParamsFunc resolves the arguments of an operation from the request.
type ParamsFunc func(r *http.Request) ([]any, error)

// ParamError is a request parameter that could not be parsed. It is
// rejected with 400.
type ParamError struct {
	Name string
	Err  error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %v", e.Name, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// NoParams is the ParamsFunc of operations without arguments.
func NoParams(*http.Request) ([]any, error) {
	return nil, nil
}

// Query passes the named query-string values as strings. Missing values
// are passed as "".
func Query(names ...string) ParamsFunc {
	return func(r *http.Request) ([]any, error) {
		q := r.URL.Query()
		args := make([]any, len(names))
		for i, name := range names {
			args[i] = q.Get(name)
		}
		return args, nil
	}
}

// QueryInt passes one integer query value, or fallback when it is absent.
func QueryInt(name string, fallback int) ParamsFunc {
	return func(r *http.Request) ([]any, error) {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return []any{fallback}, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ParamError{Name: name, Err: err}
		}
		return []any{n}, nil
	}
}

// URLParam passes the named chi route parameters as strings.
func URLParam(names ...string) ParamsFunc {
	return func(r *http.Request) ([]any, error) {
		args := make([]any, len(names))
		for i, name := range names {
			args[i] = chi.URLParam(r, name)
		}
		return args, nil
	}
}
