package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/db"
)

// EditHistory returns the applied schedule edits of a competition, latest first.
// limit <= 0 returns every edit.
func EditHistory(ctx context.Context, store db.ScheduleEditLog, logger *zap.Logger, competitionID string, limit int) ([]db.ScheduleEdit, error) {
	edits, err := store.GetScheduleEdits(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule edits: %w", err)
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].AppliedAt.After(edits[j].AppliedAt)
	})

	if limit > 0 && len(edits) > limit {
		edits = edits[:limit]
	}

	logger.Debug("Fetched edit history", zap.String("competition_id", competitionID), zap.Int("count", len(edits)))
	return edits, nil
}
