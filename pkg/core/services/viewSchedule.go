package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/schedule"
)

// CompetitionReader defines the store operation shared by every read-only service
type CompetitionReader interface {
	GetCompetition(ctx context.Context, competitionID string) (*model.Competition, error)
}

// ViewSchedule loads a competition and builds its aggregated schedule view
func ViewSchedule(ctx context.Context, store CompetitionReader, logger *zap.Logger, competitionID string) (*schedule.CompetitionView, error) {
	logger.Debug("Loading competition", zap.String("competition_id", competitionID))

	comp, err := store.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	view, err := schedule.BuildView(comp)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule view: %w", err)
	}

	slots := 0
	for _, day := range view.Days {
		slots += len(day.Slots)
	}
	logger.Debug("Schedule view built",
		zap.String("competition_id", competitionID),
		zap.Int("days", len(view.Days)),
		zap.Int("slots", slots))

	return view, nil
}
