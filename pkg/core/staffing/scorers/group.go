package scorers

import (
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// Condition is an arbitrary predicate over a candidate person and group
type Condition func(person *model.Person, group *staffing.Group) bool

// GroupScorer applies a fixed weight whenever a condition holds.
//
// Score:
//   - weight if condition(person, group) is true
//   - 0 otherwise
type GroupScorer struct {
	name      string
	condition Condition
	weight    float64
}

// NewGroupScorer creates a new GroupScorer for the condition
func NewGroupScorer(condition Condition, weight float64) *GroupScorer {
	return &GroupScorer{
		name:      "Group",
		condition: condition,
		weight:    weight,
	}
}

// Named sets the name reported in score breakdowns
func (s *GroupScorer) Named(name string) *GroupScorer {
	s.name = name
	return s
}

func (s *GroupScorer) Name() string {
	return s.name
}

func (s *GroupScorer) CaresAboutJobs() bool     { return false }
func (s *GroupScorer) CaresAboutStations() bool { return false }

func (s *GroupScorer) Score(sc staffing.ScoreContext) float64 {
	if s.condition(sc.Person, sc.Group) {
		return s.weight
	}
	return 0
}

// Rule describes a Condition by the group's room, event and start time.
// Empty fields match every group.
type Rule struct {
	// RRule is an RFC 5545 recurrence rule matched against group start times,
	// e.g. "FREQ=DAILY;BYHOUR=9;BYMINUTE=0". It recurs from midnight of the
	// competition's first day in each room's timezone.
	RRule string

	Rooms  []string
	Events []string
}

// RuleCondition builds a Condition from a rule. Recurrences are expanded per
// room once, up front.
func RuleCondition(rule Rule, comp *model.Competition) (Condition, error) {
	var byRoom map[int]*rrule.RRule

	if rule.RRule != "" {
		option, err := rrule.StrToROption(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule %q: %w", rule.RRule, err)
		}

		startDate, err := comp.Schedule.ParseStartDate()
		if err != nil {
			return nil, err
		}

		byRoom = make(map[int]*rrule.RRule)
		for _, venue := range comp.Schedule.Venues {
			for _, room := range venue.Rooms {
				loc, err := room.Location(venue)
				if err != nil {
					return nil, fmt.Errorf("room %d (%s): %w", room.ID, room.Name, err)
				}

				roomOption := *option
				roomOption.Dtstart = time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
				recurrence, err := rrule.NewRRule(roomOption)
				if err != nil {
					return nil, fmt.Errorf("failed to build rrule %q for room %d: %w", rule.RRule, room.ID, err)
				}
				byRoom[room.ID] = recurrence
			}
		}
	}

	return func(person *model.Person, group *staffing.Group) bool {
		if len(rule.Rooms) > 0 && !slices.Contains(rule.Rooms, group.Room.Name) {
			return false
		}
		if len(rule.Events) > 0 && !slices.Contains(rule.Events, group.Code.EventID) {
			return false
		}
		if byRoom != nil {
			recurrence, ok := byRoom[group.Room.ID]
			if !ok || len(recurrence.Between(group.StartTime, group.StartTime, true)) == 0 {
				return false
			}
		}
		return true
	}, nil
}
