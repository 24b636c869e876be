package applog

// Logger receives timer lifecycle events. Implementations must be safe for
// concurrent use and must not block; logging never disrupts the timer.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards all events. Usable as a zero value.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
