package schedule

import "fmt"

// ScheduleEditConflict is returned when an edit cannot be reconciled with the
// stored schedule, for example when a room's timezone cannot be resolved or
// the edit's date falls outside the competition
type ScheduleEditConflict struct {
	Date   string
	Code   string
	RoomID int
	Reason string
}

func (e *ScheduleEditConflict) Error() string {
	if e.RoomID != 0 {
		return fmt.Sprintf("schedule edit conflict for %s on %s in room %d: %s", e.Code, e.Date, e.RoomID, e.Reason)
	}
	return fmt.Sprintf("schedule edit conflict for %s on %s: %s", e.Code, e.Date, e.Reason)
}

// InvalidAdjustmentError is returned when a group adjustment cannot be applied,
// including adjustments that would remove every group of an activity
type InvalidAdjustmentError struct {
	Adjustment string
	Code       string
	RoomID     int
	Reason     string
}

func (e *InvalidAdjustmentError) Error() string {
	return fmt.Sprintf("invalid adjustment %q for %s in room %d: %s", e.Adjustment, e.Code, e.RoomID, e.Reason)
}
