package services

import (
	"context"
	"errors"
	"time"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/db"
)

func clock(hour, minute int) time.Time {
	return time.Date(2024, time.July, 4, hour, minute, 0, 0, time.UTC)
}

// testCompetition has a two group 333-r1 in the main hall and a one group
// 222-r1 in the side room, both on the first of two days
func testCompetition() *model.Competition {
	return &model.Competition{
		ID:   "Nationals2024",
		Name: "Nationals 2024",
		Events: []model.Event{
			{ID: "333", Rounds: []model.Round{{ID: "333-r1"}}},
			{ID: "222", Rounds: []model.Round{{ID: "222-r1"}}},
		},
		Persons: []*model.Person{
			{
				Name:         "Ada Lovelace",
				WcaUserID:    101,
				Registration: &model.Registration{EventIDs: []string{"333"}, Status: "accepted"},
				Assignments: []model.Assignment{
					{ActivityID: 2, AssignmentCode: "staff-judge"},
				},
			},
			{
				Name:         "Grace Hopper",
				WcaUserID:    102,
				Registration: &model.Registration{EventIDs: []string{"333", "222"}, Status: "accepted"},
			},
		},
		Schedule: model.Schedule{
			StartDate:    "2024-07-04",
			NumberOfDays: 2,
			Venues: []*model.Venue{
				{
					ID:       1,
					Name:     "Convention Centre",
					Timezone: "UTC",
					Rooms: []*model.Room{
						{
							ID:   1,
							Name: "Main Hall",
							Activities: []*model.Activity{
								{
									ID:           1,
									Name:         "3x3x3 Cube, Round 1",
									ActivityCode: "333-r1",
									StartTime:    clock(9, 0),
									EndTime:      clock(10, 0),
									ChildActivities: []*model.ChildActivity{
										{ID: 2, ActivityCode: "333-r1-g1", StartTime: clock(9, 0), EndTime: clock(9, 30)},
										{ID: 3, ActivityCode: "333-r1-g2", StartTime: clock(9, 30), EndTime: clock(10, 0)},
									},
								},
							},
						},
						{
							ID:   2,
							Name: "Side Room",
							Activities: []*model.Activity{
								{
									ID:           4,
									Name:         "2x2x2 Cube, Round 1",
									ActivityCode: "222-r1",
									StartTime:    clock(9, 0),
									EndTime:      clock(9, 30),
									ChildActivities: []*model.ChildActivity{
										{ID: 5, ActivityCode: "222-r1-g1", StartTime: clock(9, 0), EndTime: clock(9, 30)},
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

// mockStore implements every store interface used by the services
type mockStore struct {
	competitions map[string]*model.Competition
	edits        []db.ScheduleEdit

	saved     []*model.Competition
	saveErr   error
	insertErr error
}

func newMockStore(comps ...*model.Competition) *mockStore {
	store := &mockStore{competitions: make(map[string]*model.Competition)}
	for _, comp := range comps {
		store.competitions[comp.ID] = comp
	}
	return store
}

func (m *mockStore) GetCompetition(ctx context.Context, competitionID string) (*model.Competition, error) {
	comp, ok := m.competitions[competitionID]
	if !ok {
		return nil, db.ErrCompetitionNotFound
	}
	return comp, nil
}

func (m *mockStore) SaveCompetition(ctx context.Context, comp *model.Competition) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, comp)
	m.competitions[comp.ID] = comp
	return nil
}

func (m *mockStore) InsertScheduleEdit(ctx context.Context, edit *db.ScheduleEdit) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.edits = append(m.edits, *edit)
	return nil
}

func (m *mockStore) GetScheduleEdits(ctx context.Context, competitionID string) ([]db.ScheduleEdit, error) {
	var edits []db.ScheduleEdit
	for _, edit := range m.edits {
		if edit.CompetitionID == competitionID {
			edits = append(edits, edit)
		}
	}
	return edits, nil
}

var errStoreDown = errors.New("store down")
