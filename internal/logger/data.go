package logger

import (
	"log"
	"sync"
)

// Logger provides leveled, component-tagged logging for the service itself.
// Operation logging lives in the oplog package.
type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
	out      *log.Logger
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelOff never logs, whether it is the declared or the configured level.
	LevelOff
)
