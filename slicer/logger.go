package slicer

// Logger receives advisory, non-fatal warnings from the slicer. It is
// satisfied directly by *logrus.Logger and *logrus.Entry, so callers can
// pass their existing application logger without an adapter.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...interface{}) {}
