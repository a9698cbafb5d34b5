package env

import (
	"os"
	"strconv"

	"github.com/farxc/oplog/internal/logger"
	"github.com/joho/godotenv"
)

// Load reads the given .env files (".env" when none are named) into the
// process environment. Variables already set win, and missing files are
// not an error.
func Load(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	existing := make([]string, 0, len(filenames))
	for _, name := range filenames {
		if _, err := os.Stat(name); err == nil {
			existing = append(existing, name)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func GetString(key, fallback string) string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	valInt, err := strconv.Atoi(val)

	if err != nil {
		return fallback
	}
	return valInt
}

// GetLevel reads a level name such as "info". The bool is false when the
// variable is unset or not a level.
func GetLevel(key string) (logger.LogLevel, bool) {
	val, exists := os.LookupEnv(key)
	if !exists {
		return logger.LevelOff, false
	}

	level, err := logger.ParseLevel(val)
	if err != nil {
		return logger.LevelOff, false
	}
	return level, true
}
