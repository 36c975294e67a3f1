package scorers

import (
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// FollowingGroupScorer flags staffing while the person is competing.
//
// Score:
//   - weight if the person is a competitor in any group, in any room, that
//     starts at the same time as the candidate group
//   - 0 otherwise
type FollowingGroupScorer struct {
	snapshot *staffing.Snapshot
	weight   float64
}

// NewFollowingGroupScorer creates a new FollowingGroupScorer over a schedule snapshot
func NewFollowingGroupScorer(snapshot *staffing.Snapshot, weight float64) *FollowingGroupScorer {
	return &FollowingGroupScorer{
		snapshot: snapshot,
		weight:   weight,
	}
}

func (s *FollowingGroupScorer) Name() string {
	return "FollowingGroup"
}

func (s *FollowingGroupScorer) CaresAboutJobs() bool     { return false }
func (s *FollowingGroupScorer) CaresAboutStations() bool { return false }

func (s *FollowingGroupScorer) Score(sc staffing.ScoreContext) float64 {
	for _, assignment := range sc.Person.Assignments {
		if assignment.AssignmentCode != model.AssignmentCompetitor {
			continue
		}
		if s.snapshot.StartsAt(sc.Group.StartTime, assignment.ActivityID) {
			return s.weight
		}
	}
	return 0
}
