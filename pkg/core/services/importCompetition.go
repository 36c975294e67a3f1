package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/db"
)

// ImportResult summarises a copied competition document
type ImportResult struct {
	CompetitionID string
	Name          string
	Persons       int
	Activities    int
}

// ImportCompetition copies a competition document from one store to another,
// e.g. from the WCA website into PostgreSQL
func ImportCompetition(ctx context.Context, from CompetitionReader, to db.CompetitionStore, logger *zap.Logger, competitionID string) (*ImportResult, error) {
	logger.Debug("Importing competition", zap.String("competition_id", competitionID))

	comp, err := from.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch competition: %w", err)
	}

	if comp.ID != competitionID {
		return nil, fmt.Errorf("fetched competition has id %q, expected %q", comp.ID, competitionID)
	}

	if err := to.SaveCompetition(ctx, comp); err != nil {
		return nil, fmt.Errorf("failed to save competition: %w", err)
	}

	result := &ImportResult{
		CompetitionID: comp.ID,
		Name:          comp.Name,
		Persons:       len(comp.Persons),
	}
	for _, venue := range comp.Schedule.Venues {
		for _, room := range venue.Rooms {
			result.Activities += len(room.Activities)
		}
	}

	logger.Info("Competition imported",
		zap.String("competition_id", comp.ID),
		zap.Int("persons", result.Persons),
		zap.Int("activities", result.Activities))

	return result, nil
}
