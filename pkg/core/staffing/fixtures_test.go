package staffing

import (
	"time"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

func clock(hour, minute int) time.Time {
	return time.Date(2024, time.July, 4, hour, minute, 0, 0, time.UTC)
}

// testCompetition has three back-to-back 333-r1 groups in room 1 and one
// 222-r1 group in room 2 starting alongside the first of them
func testCompetition() *model.Competition {
	return &model.Competition{
		ID: "Nationals2024",
		Schedule: model.Schedule{
			StartDate:    "2024-07-04",
			NumberOfDays: 1,
			Venues: []*model.Venue{
				{
					ID:       1,
					Timezone: "UTC",
					Rooms: []*model.Room{
						{
							ID:   1,
							Name: "Main Hall",
							Activities: []*model.Activity{
								{
									ID:           10,
									ActivityCode: "333-r1",
									StartTime:    clock(9, 0),
									EndTime:      clock(10, 0),
									ChildActivities: []*model.ChildActivity{
										{ID: 11, ActivityCode: "333-r1-g1", StartTime: clock(9, 0), EndTime: clock(9, 20)},
										{ID: 12, ActivityCode: "333-r1-g2", StartTime: clock(9, 20), EndTime: clock(9, 40)},
										{ID: 13, ActivityCode: "333-r1-g3", StartTime: clock(9, 40), EndTime: clock(10, 0)},
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
									StartTime:    clock(9, 0),
									EndTime:      clock(9, 30),
									ChildActivities: []*model.ChildActivity{
										{ID: 21, ActivityCode: "222-r1-g1", StartTime: clock(9, 0), EndTime: clock(9, 30)},
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
