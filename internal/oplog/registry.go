package oplog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/farxc/oplog/internal/logger"
)

// ErrNotRegistered is matched by every lookup failure.
var ErrNotRegistered = errors.New("operation has no log declaration")

// ConfigurationError reports an operation that reached the logging action
// without ever being declared. It is a wiring bug, not a runtime condition.
type ConfigurationError struct {
	Owner  string
	Method string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("oplog: %s.%s: %v", e.Owner, e.Method, ErrNotRegistered)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrNotRegistered
}

type opKey struct {
	owner  string
	method string
}

// Registry maps an operation (owner type name, method name) to the level
// declared for it.
type Registry struct {
	mu     sync.RWMutex
	levels map[opKey]logger.LogLevel
}

func NewRegistry() *Registry {
	return &Registry{levels: make(map[opKey]logger.LogLevel)}
}

// Register stores the declared level. A later call for the same operation wins.
// It panics on a level outside DEBUG..OFF.
func (r *Registry) Register(owner, method string, level logger.LogLevel) {
	if !level.Valid() {
		panic(fmt.Sprintf("oplog: invalid level %s declared for %s.%s", level, owner, method))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[opKey{owner, method}] = level
}

// Declare is the annotation form of Register: without a level the
// operation is declared at WARN.
func (r *Registry) Declare(owner, method string, levels ...logger.LogLevel) {
	level := logger.LevelWarn
	if len(levels) > 0 {
		level = levels[0]
	}
	r.Register(owner, method, level)
}

// Lookup returns the declared level or a *ConfigurationError.
func (r *Registry) Lookup(owner, method string) (logger.LogLevel, error) {
	r.mu.RLock()
	level, ok := r.levels[opKey{owner, method}]
	r.mu.RUnlock()
	if !ok {
		return logger.LevelOff, &ConfigurationError{Owner: owner, Method: method}
	}
	return level, nil
}

// Len returns the number of declared operations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.levels)
}

// DefaultRegistry backs the package-level Register, Declare and Lookup.
var DefaultRegistry = NewRegistry()

func Register(owner, method string, level logger.LogLevel) {
	DefaultRegistry.Register(owner, method, level)
}

func Declare(owner, method string, levels ...logger.LogLevel) {
	DefaultRegistry.Declare(owner, method, levels...)
}

func Lookup(owner, method string) (logger.LogLevel, error) {
	return DefaultRegistry.Lookup(owner, method)
}
