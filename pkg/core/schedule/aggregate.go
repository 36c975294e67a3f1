package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/natshelper/pkg/core/activitycode"
	"github.com/jakechorley/natshelper/pkg/core/model"
)

const dayLength = 24 * time.Hour

// RoomActivity is one room's activity within an aggregated slot
type RoomActivity struct {
	Venue    *model.Venue
	Room     *model.Room
	Activity *model.Activity

	// StartTime and EndTime are in the room's local timezone
	StartTime time.Time
	EndTime   time.Time
}

// Slot merges every room's activity with the same code on the same day.
// Slots are derived on every read and never persisted.
type Slot struct {
	Code       activitycode.ActivityCode
	StartTime  time.Time
	EndTime    time.Time
	NumGroups  int
	Activities []RoomActivity
}

// Room returns the slot's activity for a room, or nil if the room does not run it
func (s *Slot) Room(roomID int) *RoomActivity {
	for i := range s.Activities {
		if s.Activities[i].Room.ID == roomID {
			return &s.Activities[i]
		}
	}
	return nil
}

// Day is one competition day with its slots ordered by start time
type Day struct {
	Index int
	// Date is the calendar date of the day (midnight UTC)
	Date  time.Time
	Slots []*Slot
}

// Aggregate groups the raw per-room activities into one ordered list of slots per day.
//
// An activity is filed under the day of its local start time, so an activity
// starting exactly at midnight belongs to the later day and an activity spanning
// midnight belongs only to the day it starts on.
//
// Within a day slots are ordered by start time, then by activity code.
func Aggregate(sched *model.Schedule) ([]Day, error) {
	startDate, err := sched.ParseStartDate()
	if err != nil {
		return nil, err
	}
	if sched.NumberOfDays < 1 {
		return nil, fmt.Errorf("schedule must have at least one day, got %d", sched.NumberOfDays)
	}

	days := make([]Day, sched.NumberOfDays)
	buckets := make([]map[string]*Slot, sched.NumberOfDays)
	for i := range days {
		days[i] = Day{Index: i, Date: startDate.AddDate(0, 0, i)}
		buckets[i] = make(map[string]*Slot)
	}

	for _, venue := range sched.Venues {
		for _, room := range venue.Rooms {
			loc, err := room.Location(venue)
			if err != nil {
				return nil, fmt.Errorf("room %d (%s): %w", room.ID, room.Name, err)
			}

			for _, activity := range room.Activities {
				code, err := activitycode.Parse(activity.ActivityCode)
				if err != nil {
					return nil, fmt.Errorf("activity %d: %w", activity.ID, err)
				}

				localStart := activity.StartTime.In(loc)
				localEnd := activity.EndTime.In(loc)
				day := DayIndex(startDate, localStart)
				if day < 0 || day >= sched.NumberOfDays {
					return nil, fmt.Errorf("activity %d (%s) starts on %s, outside the %d day competition starting %s",
						activity.ID, code, localStart.Format("2006-01-02"), sched.NumberOfDays, sched.StartDate)
				}

				roomActivity := RoomActivity{
					Venue:     venue,
					Room:      room,
					Activity:  activity,
					StartTime: localStart,
					EndTime:   localEnd,
				}

				slot, exists := buckets[day][code.ID()]
				if !exists {
					slot = &Slot{
						Code:      code,
						StartTime: localStart,
						EndTime:   localEnd,
					}
					buckets[day][code.ID()] = slot
				}
				mergeIntoSlot(slot, roomActivity)
			}
		}
	}

	for i := range days {
		slots := make([]*Slot, 0, len(buckets[i]))
		for _, slot := range buckets[i] {
			slots = append(slots, slot)
		}
		sortSlots(slots)
		days[i].Slots = slots
	}

	return days, nil
}

// mergeIntoSlot adds a room's activity to a slot, widening the slot's window
// and raising its group count as needed
func mergeIntoSlot(slot *Slot, roomActivity RoomActivity) {
	slot.Activities = append(slot.Activities, roomActivity)
	if roomActivity.StartTime.Before(slot.StartTime) {
		slot.StartTime = roomActivity.StartTime
	}
	if roomActivity.EndTime.After(slot.EndTime) {
		slot.EndTime = roomActivity.EndTime
	}
	slot.NumGroups = max(slot.NumGroups, len(roomActivity.Activity.ChildActivities))
}

// sortSlots orders slots by start time, breaking ties by activity code id
func sortSlots(slots []*Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].StartTime.Equal(slots[j].StartTime) {
			return slots[i].StartTime.Before(slots[j].StartTime)
		}
		return slots[i].Code.ID() < slots[j].Code.ID()
	})
}

// DayIndex returns the number of calendar days between the competition start
// date and the local date of t. Calendar arithmetic keeps DST changes from
// shifting activities between days.
func DayIndex(startDate time.Time, t time.Time) int {
	localDate := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(localDate.Sub(start) / dayLength)
}
