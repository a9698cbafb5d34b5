package oplog

import "github.com/farxc/oplog/internal/logger"

// ShouldLog reports whether an operation declared at declared produces a
// line under the configured minimum. OFF on either side suppresses output;
// both checks are needed because declared == configured == OFF would
// otherwise pass the rank comparison.
func ShouldLog(declared, configured logger.LogLevel) bool {
	return configured != logger.LevelOff &&
		declared != logger.LevelOff &&
		declared >= configured
}
