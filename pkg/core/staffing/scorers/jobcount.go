package scorers

import "github.com/jakechorley/natshelper/pkg/core/staffing"

// JobCountScorer scales a person's total staffing load.
//
// Score:
//   - weight × the number of the person's "staff-" assignments
//   - A negative weight spreads jobs across people; a positive one concentrates them
type JobCountScorer struct {
	weight float64
}

// NewJobCountScorer creates a new JobCountScorer with the given weight
func NewJobCountScorer(weight float64) *JobCountScorer {
	return &JobCountScorer{weight: weight}
}

func (s *JobCountScorer) Name() string {
	return "JobCount"
}

func (s *JobCountScorer) CaresAboutJobs() bool     { return false }
func (s *JobCountScorer) CaresAboutStations() bool { return false }

func (s *JobCountScorer) Score(sc staffing.ScoreContext) float64 {
	return s.weight * float64(len(sc.Person.StaffAssignments()))
}
