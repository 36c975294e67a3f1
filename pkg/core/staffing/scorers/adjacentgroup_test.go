package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjacentGroupScorer_Name(t *testing.T) {
	scorer := NewAdjacentGroupScorer(testSnapshot(t, testCompetition(t)), 1)
	assert.Equal(t, "AdjacentGroup", scorer.Name())
	assert.True(t, scorer.CaresAboutJobs())
	assert.True(t, scorer.CaresAboutStations())
}

func TestAdjacentGroupScorer_Score(t *testing.T) {
	comp := testCompetition(t)
	snapshot := testSnapshot(t, comp)
	scorer := NewAdjacentGroupScorer(snapshot, 2.5)

	tests := []struct {
		name        string
		assignments []Assignment
		group       int
		job         string
		station     *int
		want        float64
	}{
		{
			name:        "same job and station either side",
			assignments: []Assignment{staff(11, "judge", station(4)), staff(13, "judge", station(4))},
			group:       12,
			job:         "judge",
			station:     station(4),
			want:        5,
		},
		{
			name:        "both stations unspecified",
			assignments: []Assignment{staff(11, "runner", nil), staff(13, "runner", nil)},
			group:       12,
			job:         "runner",
			want:        5,
		},
		{
			name:        "previous group only",
			assignments: []Assignment{staff(11, "judge", station(4))},
			group:       12,
			job:         "judge",
			station:     station(4),
			want:        2.5,
		},
		{
			name:        "different station",
			assignments: []Assignment{staff(11, "judge", station(3)), staff(13, "judge", station(4))},
			group:       12,
			job:         "judge",
			station:     station(4),
			want:        2.5,
		},
		{
			name:        "station on one side only",
			assignments: []Assignment{staff(11, "judge", nil)},
			group:       12,
			job:         "judge",
			station:     station(1),
			want:        0,
		},
		{
			name:        "different job",
			assignments: []Assignment{staff(11, "scrambler", nil), staff(13, "scrambler", nil)},
			group:       12,
			job:         "judge",
			want:        0,
		},
		{
			name:        "competing in the neighbour",
			assignments: []Assignment{competitor(11)},
			group:       12,
			job:         "judge",
			want:        0,
		},
		{
			name:        "first group has no previous",
			assignments: []Assignment{staff(12, "judge", nil)},
			group:       11,
			job:         "judge",
			want:        2.5,
		},
		{
			name:        "other rooms are not neighbours",
			assignments: []Assignment{staff(11, "judge", nil), staff(12, "judge", nil)},
			group:       21,
			job:         "judge",
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scorer.Score(ScoreContext{
				Competition: comp,
				Person:      &Person{Assignments: tt.assignments},
				Group:       snapshot.Group(tt.group),
				Job:         tt.job,
				Station:     tt.station,
			})
			assert.Equal(t, tt.want, score)
		})
	}
}
