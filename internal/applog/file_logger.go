package applog

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// FileLogger appends events to a file, one JSON object per line. It is safe
// for concurrent use.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
	closed  bool
}

// NewFileLogger opens path for appending, creating it with permissions 0644
// if it does not exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

// Log writes the event. A zero Time is filled in with the current time.
// Encoding errors are ignored.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	_ = l.encoder.Encode(event)
}

// Close closes the log file. Safe to call more than once; events logged
// after Close are silently dropped.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}
