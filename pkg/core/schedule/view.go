package schedule

import (
	"github.com/jakechorley/natshelper/pkg/core/activitycode"
	"github.com/jakechorley/natshelper/pkg/core/model"
)

// AdvancementRanking is the advancement condition type that fixes the next round's size
const AdvancementRanking = "ranking"

// CompetitionView is the read model used to display a competition's schedule
type CompetitionView struct {
	Competition *model.Competition

	// Days is the aggregated schedule, one entry per competition day
	Days []Day

	Rooms   map[int]*model.Room
	Events  map[string]*model.Event
	Persons map[int]*model.Person

	// PeoplePerRound maps a round's activity code id (e.g. "333-r1") to the
	// expected number of competitors in that round
	PeoplePerRound map[string]int
}

// BuildView indexes the competition and aggregates its schedule
func BuildView(comp *model.Competition) (*CompetitionView, error) {
	view := &CompetitionView{
		Competition:    comp,
		Rooms:          make(map[int]*model.Room),
		Events:         make(map[string]*model.Event),
		Persons:        make(map[int]*model.Person),
		PeoplePerRound: make(map[string]int),
	}

	for i := range comp.Events {
		event := &comp.Events[i]
		view.Events[event.ID] = event

		// Round i's advancement condition sets the size of round i+1 (numbered i+2)
		for roundIdx := 0; roundIdx < len(event.Rounds)-1; roundIdx++ {
			condition := event.Rounds[roundIdx].AdvancementCondition
			if condition != nil && condition.Type == AdvancementRanking {
				view.PeoplePerRound[activitycode.New(event.ID, roundIdx+2).ID()] = condition.Level
			}
		}
	}

	for _, person := range comp.Persons {
		view.Persons[person.WcaUserID] = person
		if !isCounted(person.Registration) {
			continue
		}
		for _, eventID := range person.Registration.EventIDs {
			view.PeoplePerRound[activitycode.New(eventID, 1).ID()]++
		}
	}

	for _, venue := range comp.Schedule.Venues {
		for _, room := range venue.Rooms {
			view.Rooms[room.ID] = room
		}
	}

	days, err := Aggregate(&comp.Schedule)
	if err != nil {
		return nil, err
	}
	view.Days = days

	return view, nil
}

// isCounted reports whether a registration counts toward first round sizes.
// Registrations without a status are counted; otherwise only accepted ones are.
func isCounted(registration *model.Registration) bool {
	if registration == nil {
		return false
	}
	return registration.Status == "" || registration.Status == "accepted"
}
