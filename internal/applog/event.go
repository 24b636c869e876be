package applog

import "time"

// Kind identifies an event type.
type Kind string

const (
	KindOpened     Kind = "opened"
	KindClosed     Kind = "closed"
	KindStarted    Kind = "started"
	KindStopped    Kind = "stopped"
	KindReset      Kind = "reset"
	KindSwitched   Kind = "switched"
	KindLoadFailed Kind = "load_failed"
	KindSaveFailed Kind = "save_failed"
)

// Event is one timer lifecycle record.
type Event struct {
	Time    time.Time `json:"time"`
	Kind    Kind      `json:"kind"`
	Project string    `json:"project,omitempty"`

	// SessionSeconds is the length of the interval just stopped.
	SessionSeconds float64 `json:"session_seconds,omitempty"`

	// TotalSeconds is the project's accumulated total after the event.
	TotalSeconds float64 `json:"total_seconds,omitempty"`

	// Detail carries the error text for the failure kinds.
	Detail string `json:"detail,omitempty"`
}
