package db

import "time"

// ScheduleEdit represents one applied batch of schedule edits
type ScheduleEdit struct {
	ID            string // uuid
	CompetitionID string
	AppliedAt     time.Time

	// Fields is the edit payload as submitted
	Fields map[string]string

	Created int
	Removed int
	Updated int
}
