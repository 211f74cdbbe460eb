package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/logger"
)

// LogLevel represents logging level
type LogLevel int

const (
	// LevelDebug shows all log messages (most verbose)
	LevelDebug LogLevel = iota
	// LevelInfo shows info, warn, and error messages (default)
	LevelInfo
	// LevelWarn shows warn and error messages
	LevelWarn
	// LevelError shows only error messages
	LevelError
)

// SetLogLevel sets the global logging level
// Use this to enable/disable different levels of logging output
func SetLogLevel(level LogLevel) {
	debugLogger := logger.NewDefaultLogger(logger.Level(level))
	logger.SetDefault(debugLogger)
}

// EnableFrameDebug enables or disables detailed frame debugging
// When enabled, LogFrame shows hex dumps of protected and checked frames
func EnableFrameDebug(enable bool) {
	logger.SetFrameDebug(enable)
}

// LogFrame emits a hex dump of one frame if frame debugging is enabled
func LogFrame(direction string, data []byte) {
	logger.Frame(direction, data)
}
