package scorers

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jakechorley/natshelper/pkg/core/extension"
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// NoPreferenceScore is returned for jobs a person recorded no preference for
const NoPreferenceScore = -100000

// ErrNoPreferenceRecorded explains a NoPreferenceScore
var ErrNoPreferenceRecorded = errors.New("no preference recorded")

// PreferenceScorer steers people toward the jobs they asked for.
//
// Preferences are the person extension's properties named prefix+job. They are
// relative weights, normalised into target ratios that sum to 1.
//
// Score:
//   - 0 when the person recorded no preferences, or has no staff assignments yet
//   - NoPreferenceScore when the job has no recorded preference but others do
//   - Otherwise decay × weight × (targetRatio − actualRatio), where actualRatio is
//     the share of the person's staff assignments in this job and
//     decay = min(staff assignments, prior) / prior ramps up confidence with history
type PreferenceScorer struct {
	weight    float64
	prefix    string
	prior     int
	allJobs   []string
	namespace string
}

// NewPreferenceScorer creates a new PreferenceScorer. When allJobs is not
// empty, preferences for other jobs are ignored.
func NewPreferenceScorer(weight float64, prefix string, prior int, allJobs []string) *PreferenceScorer {
	return &PreferenceScorer{
		weight:    weight,
		prefix:    prefix,
		prior:     prior,
		allJobs:   allJobs,
		namespace: extension.DefaultNamespace,
	}
}

// WithNamespace reads preferences from a different extension namespace
func (s *PreferenceScorer) WithNamespace(namespace string) *PreferenceScorer {
	s.namespace = namespace
	return s
}

func (s *PreferenceScorer) Name() string {
	return "Preference"
}

func (s *PreferenceScorer) CaresAboutJobs() bool     { return true }
func (s *PreferenceScorer) CaresAboutStations() bool { return false }

func (s *PreferenceScorer) Score(sc staffing.ScoreContext) float64 {
	ratios, err := s.targetRatios(sc.Person)
	if err != nil || len(ratios) == 0 {
		return 0
	}

	targetRatio, ok := ratios[sc.Job]
	if !ok {
		return NoPreferenceScore
	}

	staff := sc.Person.StaffAssignments()
	if len(staff) == 0 {
		return 0
	}

	matching := 0
	for _, assignment := range staff {
		if assignment.Job() == sc.Job {
			matching++
		}
	}
	actualRatio := float64(matching) / float64(len(staff))

	return s.Decay(sc.Person) * s.weight * (targetRatio - actualRatio)
}

// Explain reports why Score returned NoPreferenceScore, or why preferences could not be read
func (s *PreferenceScorer) Explain(sc staffing.ScoreContext) error {
	ratios, err := s.targetRatios(sc.Person)
	if err != nil {
		return err
	}
	if len(ratios) == 0 {
		return nil
	}
	if _, ok := ratios[sc.Job]; !ok {
		return fmt.Errorf("%w for job %q by person %d", ErrNoPreferenceRecorded, sc.Job, sc.Person.WcaUserID)
	}
	return nil
}

// Decay is the confidence in the person's assignment history, from 0 to 1
func (s *PreferenceScorer) Decay(person *model.Person) float64 {
	if s.prior <= 0 {
		return 1
	}
	total := len(person.StaffAssignments())
	return float64(min(total, s.prior)) / float64(s.prior)
}

// targetRatios returns the normalised preference per job. It is empty when
// no positive preferences are recorded.
func (s *PreferenceScorer) targetRatios(person *model.Person) (map[string]float64, error) {
	data, err := extension.Load[extension.PersonData](person, extension.TypePerson, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences of person %d: %w", person.WcaUserID, err)
	}

	prefs := make(map[string]float64)
	total := 0.0
	for key, value := range data.Properties {
		if !strings.HasPrefix(key, s.prefix) {
			continue
		}
		job := strings.TrimPrefix(key, s.prefix)
		if len(s.allJobs) > 0 && !slices.Contains(s.allJobs, job) {
			continue
		}
		prefs[job] = value
		total += value
	}

	if total == 0 {
		return nil, nil
	}

	for job, value := range prefs {
		prefs[job] = value / total
	}
	return prefs, nil
}
