package project

import "time"

// Record is one project's persisted accumulated total.
type Record struct {
	Seconds   float64   `json:"seconds"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Duration returns the accumulated total as a time.Duration.
func (r Record) Duration() time.Duration {
	return time.Duration(r.Seconds * float64(time.Second))
}
