package schedule

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

const testTimezone = "America/New_York"

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(testTimezone)
	require.NoError(t, err)
	return loc
}

// at returns a UTC instant for a New York wall clock time in July 2024
func at(t *testing.T, day, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, time.July, day, hour, minute, 0, 0, newYork(t)).UTC()
}

func children(ids []int, start, end time.Time) []*model.ChildActivity {
	groups := make([]*model.ChildActivity, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, &model.ChildActivity{ID: id, StartTime: start, EndTime: end})
	}
	return groups
}

// testCompetition is a three day competition starting 2024-07-04 with two rooms:
//
//	Red Stage:  333-r1 09:00-10:00 (groups 2, 3), 222-r1 09:00-09:30, other-lunch day 2
//	Blue Stage: 333-r1 09:30-10:30 (groups 5, 6, 7)
func testCompetition(t *testing.T) *model.Competition {
	t.Helper()
	return &model.Competition{
		ID:   "Nationals2024",
		Name: "Nationals 2024",
		Events: []model.Event{
			{ID: "333", Rounds: []model.Round{{ID: "333-r1"}}},
			{ID: "222", Rounds: []model.Round{{ID: "222-r1"}}},
		},
		Schedule: model.Schedule{
			StartDate:    "2024-07-04",
			NumberOfDays: 3,
			Venues: []*model.Venue{
				{
					ID:       1,
					Name:     "Convention Center",
					Timezone: testTimezone,
					Rooms: []*model.Room{
						{
							ID:   1,
							Name: "Red Stage",
							Activities: []*model.Activity{
								{
									ID:              1,
									ActivityCode:    "333-r1",
									StartTime:       at(t, 4, 9, 0),
									EndTime:         at(t, 4, 10, 0),
									ChildActivities: children([]int{2, 3}, at(t, 4, 9, 0), at(t, 4, 10, 0)),
								},
								{
									ID:              8,
									ActivityCode:    "222-r1",
									StartTime:       at(t, 4, 9, 0),
									EndTime:         at(t, 4, 9, 30),
									ChildActivities: []*model.ChildActivity{},
								},
								{
									ID:              9,
									ActivityCode:    "other-lunch",
									StartTime:       at(t, 5, 12, 0),
									EndTime:         at(t, 5, 13, 0),
									ChildActivities: []*model.ChildActivity{},
								},
							},
						},
						{
							ID:   2,
							Name: "Blue Stage",
							Activities: []*model.Activity{
								{
									ID:              4,
									ActivityCode:    "333-r1",
									StartTime:       at(t, 4, 9, 30),
									EndTime:         at(t, 4, 10, 30),
									ChildActivities: children([]int{5, 6, 7}, at(t, 4, 9, 30), at(t, 4, 10, 30)),
								},
							},
						},
					},
				},
			},
		},
	}
}

func redStage(comp *model.Competition) *model.Room {
	return comp.Schedule.Venues[0].Rooms[0]
}

func blueStage(comp *model.Competition) *model.Room {
	return comp.Schedule.Venues[0].Rooms[1]
}

func activityByCode(room *model.Room, code string) *model.Activity {
	for _, activity := range room.Activities {
		if activity.ActivityCode == code {
			return activity
		}
	}
	return nil
}

func allActivityIDs(comp *model.Competition) []int {
	var ids []int
	for _, venue := range comp.Schedule.Venues {
		for _, room := range venue.Rooms {
			for _, activity := range room.Activities {
				ids = append(ids, activity.ID)
				for _, child := range activity.ChildActivities {
					ids = append(ids, child.ID)
				}
			}
		}
	}
	return ids
}
