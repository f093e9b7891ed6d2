package primary

// Logger is the logging port used across services and adapters; the zap
// adapter implements it with alternating key/value args.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}
