package scorers

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/natshelper/pkg/core/extension"
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// clock returns a New York wall clock time on 2024-07-04
func clock(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return time.Date(2024, time.July, 4, hour, minute, 0, 0, loc).UTC()
}

// testCompetition has three back-to-back 333-r1 groups (11, 12, 13) in the
// Main Hall and one 222-r1 group (21) in the Side Room alongside group 11
func testCompetition(t *testing.T) *model.Competition {
	t.Helper()
	return &model.Competition{
		ID: "Nationals2024",
		Schedule: model.Schedule{
			StartDate:    "2024-07-04",
			NumberOfDays: 1,
			Venues: []*model.Venue{
				{
					ID:       1,
					Timezone: "America/New_York",
					Rooms: []*model.Room{
						{
							ID:   1,
							Name: "Main Hall",
							Activities: []*model.Activity{
								{
									ID:           10,
									ActivityCode: "333-r1",
									StartTime:    clock(t, 9, 0),
									EndTime:      clock(t, 10, 0),
									ChildActivities: []*model.ChildActivity{
										{ID: 11, ActivityCode: "333-r1-g1", StartTime: clock(t, 9, 0), EndTime: clock(t, 9, 20)},
										{ID: 12, ActivityCode: "333-r1-g2", StartTime: clock(t, 9, 20), EndTime: clock(t, 9, 40)},
										{ID: 13, ActivityCode: "333-r1-g3", StartTime: clock(t, 9, 40), EndTime: clock(t, 10, 0)},
									},
								},
							},
						},
						{
							ID:   2,
							Name: "Side Room",
							Activities: []*model.Activity{
								{
									ID:           20,
									ActivityCode: "222-r1",
									StartTime:    clock(t, 9, 0),
									EndTime:      clock(t, 9, 30),
									ChildActivities: []*model.ChildActivity{
										{ID: 21, ActivityCode: "222-r1-g1", StartTime: clock(t, 9, 0), EndTime: clock(t, 9, 30)},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func testSnapshot(t *testing.T, comp *model.Competition) *Snapshot {
	t.Helper()
	snapshot, err := staffing.NewSnapshot(comp)
	require.NoError(t, err)
	return snapshot
}

func station(n int) *int {
	return &n
}

func staff(activityID int, job string, stationNumber *int) Assignment {
	return Assignment{ActivityID: activityID, AssignmentCode: model.StaffPrefix + job, StationNumber: stationNumber}
}

func competitor(activityID int) Assignment {
	return Assignment{ActivityID: activityID, AssignmentCode: model.AssignmentCompetitor}
}

// staffHistory returns n staff assignments: judge first, then scrambler
func staffHistory(judging, scrambling int) []Assignment {
	var assignments []Assignment
	for i := 0; i < judging; i++ {
		assignments = append(assignments, staff(100+i, "judge", nil))
	}
	for i := 0; i < scrambling; i++ {
		assignments = append(assignments, staff(200+i, "scrambler", nil))
	}
	return assignments
}

func withPreferences(person *Person, properties map[string]float64) *Person {
	err := extension.Store(person, extension.TypePerson, extension.DefaultNamespace, extension.PersonData{Properties: properties})
	if err != nil {
		panic(err)
	}
	return person
}
