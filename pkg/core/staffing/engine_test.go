package staffing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

var errTestNote = errors.New("test note")

type fixedScorer struct {
	name     string
	score    float64
	needsJob bool
}

func (s *fixedScorer) Name() string             { return s.name }
func (s *fixedScorer) CaresAboutJobs() bool     { return s.needsJob }
func (s *fixedScorer) CaresAboutStations() bool { return false }
func (s *fixedScorer) Score(ScoreContext) float64 {
	return s.score
}

type explainingScorer struct {
	fixedScorer
}

func (s *explainingScorer) Explain(ScoreContext) error {
	return errTestNote
}

func scoreContext(t *testing.T, job string) ScoreContext {
	t.Helper()
	snapshot, err := NewSnapshot(testCompetition())
	require.NoError(t, err)
	return ScoreContext{
		Competition: testCompetition(),
		Person:      &model.Person{WcaUserID: 1},
		Group:       snapshot.Group(11),
		Job:         job,
	}
}

func TestEvaluate_ContractViolations(t *testing.T) {
	scorer := &fixedScorer{name: "NeedsJob", score: 1, needsJob: true}

	tests := []struct {
		name   string
		mutate func(sc *ScoreContext)
		reason string
	}{
		{name: "missing job", mutate: func(sc *ScoreContext) { sc.Job = "" }, reason: "no job given"},
		{name: "missing person", mutate: func(sc *ScoreContext) { sc.Person = nil }, reason: "no person given"},
		{name: "missing group", mutate: func(sc *ScoreContext) { sc.Group = nil }, reason: "no group given"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scoreContext(t, "judge")
			tt.mutate(&sc)

			_, err := Evaluate(scorer, sc)
			require.Error(t, err)

			var violation *ContractViolationError
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, "NeedsJob", violation.Scorer)
			assert.Equal(t, tt.reason, violation.Reason)
		})
	}
}

func TestEvaluate_JobOptionalWhenNotNeeded(t *testing.T) {
	score, err := Evaluate(&fixedScorer{name: "Plain", score: 2.5}, scoreContext(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 2.5, score)
}

func TestEngine_Score_SumsBreakdown(t *testing.T) {
	engine := NewEngine(
		&fixedScorer{name: "A", score: 1.5},
		&explainingScorer{fixedScorer{name: "B", score: -4}},
	)

	breakdown, err := engine.Score(scoreContext(t, "judge"))
	require.NoError(t, err)

	assert.Equal(t, -2.5, breakdown.Total)
	require.Len(t, breakdown.Results, 2)
	assert.Equal(t, ScoreResult{Scorer: "A", Score: 1.5}, breakdown.Results[0])
	assert.Equal(t, "B", breakdown.Results[1].Scorer)
	assert.ErrorIs(t, breakdown.Results[1].Note, errTestNote)
	assert.Len(t, engine.Scorers(), 2)
}

func TestEngine_Score_StopsOnViolation(t *testing.T) {
	engine := NewEngine(
		&fixedScorer{name: "A", score: 1},
		&fixedScorer{name: "B", score: 1, needsJob: true},
	)

	_, err := engine.Score(scoreContext(t, ""))
	assert.Error(t, err)
}
