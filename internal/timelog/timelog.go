package timelog

import "time"

// Session is one recorded interval between a start and the matching stop.
type Session struct {
	ID        int64
	Project   string
	StartedAt time.Time
	StoppedAt time.Time
	Duration  time.Duration
}
