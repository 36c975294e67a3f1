package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

var judgeAndScramble = map[string]float64{
	"staff-judge":     3,
	"staff-scrambler": 1,
}

func TestPreferenceScorer_Name(t *testing.T) {
	scorer := NewPreferenceScorer(1, "staff-", 10, nil)
	assert.Equal(t, "Preference", scorer.Name())
	assert.True(t, scorer.CaresAboutJobs())
	assert.False(t, scorer.CaresAboutStations())
}

func TestPreferenceScorer_Decay(t *testing.T) {
	scorer := NewPreferenceScorer(1, "staff-", 10, nil)

	assert.InDelta(t, 0.3, scorer.Decay(&Person{Assignments: staffHistory(3, 0)}), 1e-9)
	assert.InDelta(t, 1.0, scorer.Decay(&Person{Assignments: staffHistory(10, 5)}), 1e-9)
	assert.InDelta(t, 0.0, scorer.Decay(&Person{}), 1e-9)
}

func TestPreferenceScorer_Score(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := withPreferences(&Person{Assignments: staffHistory(1, 2)}, judgeAndScramble)

	// target 0.75, actual 1/3, decay 0.3
	assert.InDelta(t, 1.25, scorer.Score(ScoreContext{Person: person, Job: "judge"}), 1e-9)
	// target 0.25, actual 2/3, decay 0.3
	assert.InDelta(t, -1.25, scorer.Score(ScoreContext{Person: person, Job: "scrambler"}), 1e-9)
}

func TestPreferenceScorer_NoPreferenceForJob(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := withPreferences(&Person{WcaUserID: 7, Assignments: staffHistory(1, 2)}, map[string]float64{
		"staff-scrambler": 1,
	})
	sc := ScoreContext{Person: person, Job: "judge"}

	assert.Equal(t, float64(NoPreferenceScore), scorer.Score(sc))
	assert.ErrorIs(t, scorer.Explain(sc), ErrNoPreferenceRecorded)
	assert.NoError(t, scorer.Explain(ScoreContext{Person: person, Job: "scrambler"}))
}

func TestPreferenceScorer_NoPreferencesAtAll(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := &Person{Assignments: staffHistory(1, 2)}
	sc := ScoreContext{Person: person, Job: "judge"}

	assert.Equal(t, 0.0, scorer.Score(sc))
	assert.NoError(t, scorer.Explain(sc))
}

func TestPreferenceScorer_ZeroPreferences(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := withPreferences(&Person{Assignments: staffHistory(1, 2)}, map[string]float64{
		"staff-judge": 0,
	})

	assert.Equal(t, 0.0, scorer.Score(ScoreContext{Person: person, Job: "runner"}))
}

func TestPreferenceScorer_NoHistory(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := withPreferences(&Person{Assignments: []Assignment{competitor(11)}}, judgeAndScramble)

	assert.Equal(t, 0.0, scorer.Score(ScoreContext{Person: person, Job: "judge"}))
}

func TestPreferenceScorer_IgnoresOtherPrefixes(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := withPreferences(&Person{Assignments: staffHistory(2, 0)}, map[string]float64{
		"staff-judge": 1,
		"shirt-size":  3,
	})

	// judge is the only preference, so the target ratio is 1 and the actual ratio is 1
	assert.InDelta(t, 0.0, scorer.Score(ScoreContext{Person: person, Job: "judge"}), 1e-9)
}

func TestPreferenceScorer_AllJobsRestrictsPreferences(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, []string{"judge"})
	person := withPreferences(&Person{Assignments: staffHistory(0, 10)}, judgeAndScramble)

	// Only judge counts: target 1, actual 0, decay 1
	assert.InDelta(t, 10.0, scorer.Score(ScoreContext{Person: person, Job: "judge"}), 1e-9)
	assert.Equal(t, float64(NoPreferenceScore), scorer.Score(ScoreContext{Person: person, Job: "scrambler"}))
}

func TestPreferenceScorer_Namespace(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil).WithNamespace("org.example.v2")
	person := withPreferences(&Person{Assignments: staffHistory(1, 2)}, judgeAndScramble)

	assert.Equal(t, 0.0, scorer.Score(ScoreContext{Person: person, Job: "runner"}), "preferences live in the default namespace")
}

func TestPreferenceScorer_MalformedExtension(t *testing.T) {
	scorer := NewPreferenceScorer(10, "staff-", 10, nil)
	person := &Person{
		Assignments: staffHistory(1, 2),
		Extensions: []*model.Extension{
			{ID: "org.cubingusa.natshelper.v1.Person", Data: map[string]any{"properties": "judge"}},
		},
	}
	sc := ScoreContext{Person: person, Job: "judge"}

	assert.Equal(t, 0.0, scorer.Score(sc))
	assert.Error(t, scorer.Explain(sc))
}
