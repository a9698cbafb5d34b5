package oplog

import (
	"fmt"
	"sync/atomic"

	"github.com/farxc/oplog/internal/logger"
)

// DefaultLevel is the configured minimum until something overrides it.
const DefaultLevel = logger.LevelWarn

// LevelConfig holds the process-wide configured minimum. Writes are last
// writer wins; every logging action reads the current value.
type LevelConfig struct {
	level atomic.Int32
}

func NewLevelConfig(level logger.LogLevel) *LevelConfig {
	c := &LevelConfig{}
	c.Set(level)
	return c
}

// Set panics on a level outside DEBUG..OFF.
func (c *LevelConfig) Set(level logger.LogLevel) {
	if !level.Valid() {
		panic(fmt.Sprintf("oplog: invalid configured level %s", level))
	}
	c.level.Store(int32(level))
}

func (c *LevelConfig) Get() logger.LogLevel {
	return logger.LogLevel(c.level.Load())
}
