package staffing

import (
	"fmt"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

// Scorer rates how desirable it is to give a person a job in a group.
// Higher scores are more desirable; the scores of every configured scorer are summed.
type Scorer interface {
	// Name returns a human-readable identifier for this scorer
	Name() string

	// CaresAboutJobs is true when Score reads ScoreContext.Job.
	// Callers must then supply a job.
	CaresAboutJobs() bool

	// CaresAboutStations is true when Score reads ScoreContext.Station.
	// A nil station is legal and means the station is unspecified.
	CaresAboutStations() bool

	// Score rates the candidate assignment. Scorers never fail on a context
	// that passed Evaluate's checks.
	Score(sc ScoreContext) float64
}

// Explainer is implemented by scorers that can describe why a score is a sentinel value
type Explainer interface {
	// Explain returns a diagnostic error for the context, or nil when the score is ordinary
	Explain(sc ScoreContext) error
}

// ScoreContext is the candidate assignment being scored
type ScoreContext struct {
	Competition *model.Competition
	Person      *model.Person
	Group       *Group

	// Job is the staff job without the "staff-" prefix, e.g. "judge"
	Job string

	// Station is the station number, or nil when unspecified
	Station *int
}

// ContractViolationError is returned when a scorer is called without the inputs it needs
type ContractViolationError struct {
	Scorer string
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("scorer %s: %s", e.Scorer, e.Reason)
}

// Evaluate checks the context against the scorer's declared needs and then scores it
func Evaluate(scorer Scorer, sc ScoreContext) (float64, error) {
	if sc.Person == nil {
		return 0, &ContractViolationError{Scorer: scorer.Name(), Reason: "no person given"}
	}
	if sc.Group == nil {
		return 0, &ContractViolationError{Scorer: scorer.Name(), Reason: "no group given"}
	}
	if scorer.CaresAboutJobs() && sc.Job == "" {
		return 0, &ContractViolationError{Scorer: scorer.Name(), Reason: "no job given"}
	}
	return scorer.Score(sc), nil
}
