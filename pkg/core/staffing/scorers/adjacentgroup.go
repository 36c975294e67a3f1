package scorers

import (
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// AdjacentGroupScorer rewards keeping a person at the same job and station
// across back-to-back groups in a room.
//
// Score:
//   - The previous group is the room's group ending when the candidate starts;
//     the next group is the one starting when it ends
//   - Each neighbour adds weight when the person's assignment there is the
//     same staff job at the same station (both unspecified counts as the same)
//   - Up to 2 × weight in total
type AdjacentGroupScorer struct {
	snapshot *staffing.Snapshot
	weight   float64
}

// NewAdjacentGroupScorer creates a new AdjacentGroupScorer over a schedule snapshot
func NewAdjacentGroupScorer(snapshot *staffing.Snapshot, weight float64) *AdjacentGroupScorer {
	return &AdjacentGroupScorer{
		snapshot: snapshot,
		weight:   weight,
	}
}

func (s *AdjacentGroupScorer) Name() string {
	return "AdjacentGroup"
}

func (s *AdjacentGroupScorer) CaresAboutJobs() bool     { return true }
func (s *AdjacentGroupScorer) CaresAboutStations() bool { return true }

func (s *AdjacentGroupScorer) Score(sc staffing.ScoreContext) float64 {
	// Look the group up in the snapshot so neighbours come from the same build
	group := s.snapshot.Group(sc.Group.ID())
	if group == nil {
		return 0
	}

	score := 0.0
	for _, neighbour := range []*staffing.Group{s.snapshot.Previous(group), s.snapshot.Next(group)} {
		if neighbour == nil {
			continue
		}
		if assignment := firstAssignment(sc.Person, neighbour.ID()); assignment != nil && matchesJob(*assignment, sc.Job, sc.Station) {
			score += s.weight
		}
	}
	return score
}

func firstAssignment(person *model.Person, activityID int) *model.Assignment {
	for i := range person.Assignments {
		if person.Assignments[i].ActivityID == activityID {
			return &person.Assignments[i]
		}
	}
	return nil
}

func matchesJob(assignment model.Assignment, job string, station *int) bool {
	if !assignment.IsStaff() || assignment.Job() != job {
		return false
	}
	if station == nil || assignment.StationNumber == nil {
		return station == nil && assignment.StationNumber == nil
	}
	return *station == *assignment.StationNumber
}
