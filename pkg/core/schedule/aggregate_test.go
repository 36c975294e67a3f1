package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

func slotCodes(day Day) []string {
	codes := make([]string, 0, len(day.Slots))
	for _, slot := range day.Slots {
		codes = append(codes, slot.Code.ID())
	}
	return codes
}

func TestAggregate_MergesRoomsIntoSlots(t *testing.T) {
	comp := testCompetition(t)

	days, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, []string{"222-r1", "333-r1"}, slotCodes(days[0]))
	assert.Equal(t, []string{"other-lunch"}, slotCodes(days[1]))
	assert.Empty(t, days[2].Slots)

	slot := days[0].Slots[1]
	loc := newYork(t)
	assert.True(t, slot.StartTime.Equal(time.Date(2024, time.July, 4, 9, 0, 0, 0, loc)), "slot starts at the earliest room start")
	assert.True(t, slot.EndTime.Equal(time.Date(2024, time.July, 4, 10, 30, 0, 0, loc)), "slot ends at the latest room end")
	assert.Equal(t, 3, slot.NumGroups)
	assert.Len(t, slot.Activities, 2)

	require.NotNil(t, slot.Room(2))
	assert.Equal(t, 4, slot.Room(2).Activity.ID)
	assert.Equal(t, loc.String(), slot.Room(2).StartTime.Location().String())
	assert.Nil(t, slot.Room(99))
}

func TestAggregate_DayDates(t *testing.T) {
	comp := testCompetition(t)

	days, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)

	for i, day := range days {
		assert.Equal(t, i, day.Index)
		assert.Equal(t, time.Date(2024, time.July, 4+i, 0, 0, 0, 0, time.UTC), day.Date)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	comp := testCompetition(t)
	first, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)

	// Reversing the room order must not change slot order
	rooms := comp.Schedule.Venues[0].Rooms
	rooms[0], rooms[1] = rooms[1], rooms[0]
	second, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, slotCodes(first[i]), slotCodes(second[i]))
	}
}

func TestAggregate_MidnightStartBelongsToLaterDay(t *testing.T) {
	comp := testCompetition(t)
	redStage(comp).Activities = append(redStage(comp).Activities, &model.Activity{
		ID:           20,
		ActivityCode: "444-r1",
		StartTime:    at(t, 5, 0, 0),
		EndTime:      at(t, 5, 1, 0),
	})

	days, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)

	assert.NotContains(t, slotCodes(days[0]), "444-r1")
	assert.Contains(t, slotCodes(days[1]), "444-r1")
}

func TestAggregate_SpanningMidnightStaysOnStartDay(t *testing.T) {
	comp := testCompetition(t)
	redStage(comp).Activities = append(redStage(comp).Activities, &model.Activity{
		ID:           20,
		ActivityCode: "other-social",
		StartTime:    at(t, 4, 23, 0),
		EndTime:      at(t, 5, 1, 0),
	})

	days, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)

	assert.Contains(t, slotCodes(days[0]), "other-social")
	assert.NotContains(t, slotCodes(days[1]), "other-social")
}

func TestAggregate_RoomTimezoneOverridesVenue(t *testing.T) {
	comp := testCompetition(t)
	room := blueStage(comp)
	room.Timezone = "America/Los_Angeles"
	// 05:00Z is 01:00 on the 5th in New York but 22:00 on the 4th in Los Angeles
	room.Activities = append(room.Activities, &model.Activity{
		ID:           20,
		ActivityCode: "555-r1",
		StartTime:    time.Date(2024, time.July, 5, 5, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2024, time.July, 5, 6, 0, 0, 0, time.UTC),
	})

	days, err := Aggregate(&comp.Schedule)
	require.NoError(t, err)

	assert.Contains(t, slotCodes(days[0]), "555-r1")
}

func TestAggregate_OutOfRangeActivity(t *testing.T) {
	comp := testCompetition(t)
	redStage(comp).Activities = append(redStage(comp).Activities, &model.Activity{
		ID:           20,
		ActivityCode: "444-r1",
		StartTime:    at(t, 9, 9, 0),
		EndTime:      at(t, 9, 10, 0),
	})

	_, err := Aggregate(&comp.Schedule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the 3 day competition")
}

func TestAggregate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(comp *model.Competition)
	}{
		{
			name:   "invalid start date",
			mutate: func(comp *model.Competition) { comp.Schedule.StartDate = "July 4th" },
		},
		{
			name:   "no days",
			mutate: func(comp *model.Competition) { comp.Schedule.NumberOfDays = 0 },
		},
		{
			name:   "unknown timezone",
			mutate: func(comp *model.Competition) { comp.Schedule.Venues[0].Timezone = "Mars/Olympus_Mons" },
		},
		{
			name:   "malformed activity code",
			mutate: func(comp *model.Competition) { redStage(comp).Activities[0].ActivityCode = "333-rx" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := testCompetition(t)
			tt.mutate(comp)

			_, err := Aggregate(&comp.Schedule)
			assert.Error(t, err)
		})
	}
}

func TestDayIndex_AcrossDaylightSavingChange(t *testing.T) {
	loc := newYork(t)
	start := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	// Clocks go forward on 2024-03-10, so the 11th is only 47 hours after midnight on the 9th
	assert.Equal(t, 2, DayIndex(start, time.Date(2024, time.March, 11, 0, 30, 0, 0, loc)))
	assert.Equal(t, 1, DayIndex(start, time.Date(2024, time.March, 10, 23, 59, 0, 0, loc)))
	assert.Equal(t, -1, DayIndex(start, time.Date(2024, time.March, 8, 12, 0, 0, 0, loc)))
}
