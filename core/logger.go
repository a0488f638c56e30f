package core

// Logger is any leveled logger that can report to an error tracker.
// args may carry errors, maps of extra data or a user.User to attach
// to the report.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
