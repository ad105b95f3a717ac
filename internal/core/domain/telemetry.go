package domain

import "log/slog"

// LogLevel is the severity of a message recorded on a layer vertex. Values match slog's.
type LogLevel int

// Levels, in increasing severity.
const (
	LogLevelDebug = LogLevel(slog.LevelDebug)
	LogLevelInfo  = LogLevel(slog.LevelInfo)
	LogLevelWarn  = LogLevel(slog.LevelWarn)
	LogLevelError = LogLevel(slog.LevelError)
)

// LevelOf converts a slog level, rounding down to the nearest known level.
func LevelOf(level slog.Level) LogLevel {
	switch l := LogLevel(level); {
	case l >= LogLevelError:
		return LogLevelError
	case l >= LogLevelWarn:
		return LogLevelWarn
	case l >= LogLevelInfo:
		return LogLevelInfo
	default:
		return LogLevelDebug
	}
}

// Severe reports whether messages of this level belong on an error stream.
func (l LogLevel) Severe() bool {
	return l >= LogLevelWarn
}

// String returns the upper-case level name. Unknown levels print as INFO.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
