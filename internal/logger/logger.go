package logger

// Logger is the leveled message logger used by restobid commands.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)
