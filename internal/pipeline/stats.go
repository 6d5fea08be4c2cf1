package pipeline

import "time"

// RunStats tracks aggregate counters and totals across a batch run.
type RunStats struct {
	Total           int
	Current         int
	Transcribed     int
	Skipped         int
	Failed          int
	TotalInputBytes int64
	AudioDuration   time.Duration
}
