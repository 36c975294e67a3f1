package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/services"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
	"github.com/jakechorley/natshelper/pkg/db"
)

var (
	_ db.CompetitionStore     = (*sessionStore)(nil)
	_ services.SnapshotReader = (*sessionStore)(nil)
)

// sessionStore keeps the competition of an interactive session in memory so
// each command does not fetch it again. Readers get copies. Scoring shares one
// snapshot, rebuilt after every save.
type sessionStore struct {
	db.CompetitionStore
	logger *zap.Logger

	comp     *model.Competition
	snapshot *staffing.Snapshot
}

func newSessionStore(logger *zap.Logger) *sessionStore {
	return &sessionStore{logger: logger}
}

func (s *sessionStore) load(ctx context.Context, competitionID string) (*model.Competition, error) {
	if s.comp != nil && s.comp.ID == competitionID {
		return s.comp, nil
	}

	comp, err := s.CompetitionStore.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	s.comp = comp
	s.snapshot = nil

	s.logger.Debug("Loaded competition into session",
		zap.String("competition_id", competitionID),
		zap.Int("persons", len(comp.Persons)))
	return comp, nil
}

// GetCompetition returns a copy, since edits are applied to the document in place
func (s *sessionStore) GetCompetition(ctx context.Context, competitionID string) (*model.Competition, error) {
	comp, err := s.load(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return comp.Clone()
}

func (s *sessionStore) SaveCompetition(ctx context.Context, comp *model.Competition) error {
	if err := s.CompetitionStore.SaveCompetition(ctx, comp); err != nil {
		return err
	}

	s.snapshot = nil
	saved, err := comp.Clone()
	if err != nil {
		s.comp = nil
		return nil
	}
	s.comp = saved
	return nil
}

func (s *sessionStore) GetSnapshot(ctx context.Context, competitionID string) (*model.Competition, *staffing.Snapshot, error) {
	comp, err := s.load(ctx, competitionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load competition: %w", err)
	}

	if s.snapshot == nil {
		snapshot, err := staffing.NewSnapshot(comp)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to index groups: %w", err)
		}
		s.snapshot = snapshot
		s.logger.Debug("Built staffing snapshot",
			zap.String("competition_id", competitionID),
			zap.String("generation", snapshot.Generation.String()),
			zap.Int("groups", len(snapshot.Groups())))
	}

	return comp, s.snapshot, nil
}

// Forget drops the cached competition so the next command fetches it again
func (s *sessionStore) Forget() {
	s.comp = nil
	s.snapshot = nil
}
