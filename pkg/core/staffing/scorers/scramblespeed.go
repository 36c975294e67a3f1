package scorers

import "github.com/jakechorley/natshelper/pkg/core/staffing"

// JobScrambler is the job ScrambleSpeedScorer rates
const JobScrambler = "scrambler"

// ScrambleSpeedScorer favours fast solvers of an event as scramblers.
//
// Score:
//   - 0 for any job other than "scrambler"
//   - 0 when the person has no personal best for the event, or it is slower than maxTime
//   - Otherwise -weight × personalBest / maxTime, using the average if recorded, else the single
type ScrambleSpeedScorer struct {
	eventID string
	maxTime int
	weight  float64
}

// NewScrambleSpeedScorer creates a new ScrambleSpeedScorer. maxTime is in
// centiseconds, the unit of WCIF results.
func NewScrambleSpeedScorer(eventID string, maxTime int, weight float64) *ScrambleSpeedScorer {
	return &ScrambleSpeedScorer{
		eventID: eventID,
		maxTime: maxTime,
		weight:  weight,
	}
}

func (s *ScrambleSpeedScorer) Name() string {
	return "ScrambleSpeed"
}

func (s *ScrambleSpeedScorer) CaresAboutJobs() bool     { return true }
func (s *ScrambleSpeedScorer) CaresAboutStations() bool { return false }

func (s *ScrambleSpeedScorer) Score(sc staffing.ScoreContext) float64 {
	if sc.Job != JobScrambler || s.maxTime <= 0 {
		return 0
	}

	result := sc.Person.PersonalBest(s.eventID)
	if result == nil || result.Value > s.maxTime {
		return 0
	}

	return -s.weight * float64(result.Value) / float64(s.maxTime)
}
