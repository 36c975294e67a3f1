package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/internal/config"
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// ScoreGroupRequest identifies the assignment being scored
type ScoreGroupRequest struct {
	CompetitionID string
	GroupID       int
	Job           string
	Station       *int

	// PersonID is the WCA user id to score; 0 scores every person
	PersonID int
}

// CandidateScore is one person's score for the requested assignment
type CandidateScore struct {
	Person    *model.Person
	Breakdown *staffing.Breakdown
}

// ScoreGroupResult represents the scored candidates of a group, best first
type ScoreGroupResult struct {
	Group      *staffing.Group
	Scorers    []string
	Candidates []CandidateScore
}

// SnapshotReader is implemented by stores that keep a loaded competition indexed
// between calls. The snapshot must have been built from the returned competition.
type SnapshotReader interface {
	GetSnapshot(ctx context.Context, competitionID string) (*model.Competition, *staffing.Snapshot, error)
}

func loadSnapshot(ctx context.Context, store CompetitionReader, competitionID string) (*model.Competition, *staffing.Snapshot, error) {
	if reader, ok := store.(SnapshotReader); ok {
		return reader.GetSnapshot(ctx, competitionID)
	}

	comp, err := store.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load competition: %w", err)
	}
	snapshot, err := staffing.NewSnapshot(comp)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to index groups: %w", err)
	}
	return comp, snapshot, nil
}

// ScoreGroup rates how well each person fits a job in a group using the configured scorers
func ScoreGroup(
	ctx context.Context,
	store CompetitionReader,
	cfg *config.Config,
	logger *zap.Logger,
	req ScoreGroupRequest,
) (*ScoreGroupResult, error) {
	logger.Debug("Scoring group",
		zap.String("competition_id", req.CompetitionID),
		zap.Int("group_id", req.GroupID),
		zap.String("job", req.Job),
		zap.Int("person_id", req.PersonID))

	comp, snapshot, err := loadSnapshot(ctx, store, req.CompetitionID)
	if err != nil {
		return nil, err
	}

	group := snapshot.Group(req.GroupID)
	if group == nil {
		return nil, fmt.Errorf("group %d not found in competition %s", req.GroupID, req.CompetitionID)
	}

	list, err := BuildScorers(cfg.Scoring, comp, snapshot, cfg.ExtensionNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to build scorers: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no scorers configured")
	}
	engine := staffing.NewEngine(list...)

	persons := comp.Persons
	if req.PersonID != 0 {
		person := comp.PersonByUserID(req.PersonID)
		if person == nil {
			return nil, fmt.Errorf("person %d not found in competition %s", req.PersonID, req.CompetitionID)
		}
		persons = []*model.Person{person}
	}

	result := &ScoreGroupResult{Group: group}
	for _, scorer := range list {
		result.Scorers = append(result.Scorers, scorer.Name())
	}

	for _, person := range persons {
		breakdown, err := engine.Score(staffing.ScoreContext{
			Competition: comp,
			Person:      person,
			Group:       group,
			Job:         req.Job,
			Station:     req.Station,
		})
		if err != nil {
			return nil, err
		}
		result.Candidates = append(result.Candidates, CandidateScore{Person: person, Breakdown: breakdown})
	}

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Breakdown.Total > result.Candidates[j].Breakdown.Total
	})

	logger.Debug("Scored group",
		zap.Int("group_id", req.GroupID),
		zap.Int("candidates", len(result.Candidates)),
		zap.String("snapshot", snapshot.Generation.String()))

	return result, nil
}
