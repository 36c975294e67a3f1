package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/schedule"
	"github.com/jakechorley/natshelper/pkg/db"
)

// EditScheduleStore defines the database operations needed to edit a schedule
type EditScheduleStore interface {
	db.CompetitionStore
	InsertScheduleEdit(ctx context.Context, edit *db.ScheduleEdit) error
}

// EditScheduleResult represents the result of applying a batch of schedule edits
type EditScheduleResult struct {
	// Edit is the history record; nil on a dry run
	Edit    *db.ScheduleEdit
	Outcome *schedule.EditOutcome
	DryRun  bool
}

// EditSchedule applies an edit payload to a competition's schedule and saves the document.
// Nothing is saved if any edit fails or if dryRun is set.
func EditSchedule(
	ctx context.Context,
	store EditScheduleStore,
	logger *zap.Logger,
	competitionID string,
	namespace string,
	fields map[string]string,
	dryRun bool,
) (*EditScheduleResult, error) {
	logger.Debug("Editing schedule",
		zap.String("competition_id", competitionID),
		zap.Int("fields", len(fields)),
		zap.Bool("dry_run", dryRun))

	edits, err := schedule.ParseEdits(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to parse edits: %w", err)
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("no edits found in payload")
	}
	logger.Debug("Parsed edits", zap.Int("count", len(edits)))

	comp, err := store.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}

	outcome, err := schedule.ApplyEdits(comp, schedule.EditConfig{
		Edits:              edits,
		ExtensionNamespace: namespace,
	})
	if err != nil {
		return nil, err
	}

	result := &EditScheduleResult{Outcome: outcome, DryRun: dryRun}
	if dryRun {
		logger.Info("Dry run, schedule not saved", zap.Int("changes", len(outcome.Changes)))
		return result, nil
	}

	if err := store.SaveCompetition(ctx, comp); err != nil {
		return nil, fmt.Errorf("failed to save competition: %w", err)
	}

	edit := &db.ScheduleEdit{
		ID:            uuid.New().String(),
		CompetitionID: competitionID,
		AppliedAt:     time.Now().UTC(),
		Fields:        fields,
	}
	for _, change := range outcome.Changes {
		switch change.Kind {
		case schedule.ChangeCreated:
			edit.Created++
		case schedule.ChangeRemoved:
			edit.Removed++
		case schedule.ChangeUpdated:
			edit.Updated++
		}
	}

	// The document is already saved; a failed history insert is reported but not undone
	if err := store.InsertScheduleEdit(ctx, edit); err != nil {
		return nil, fmt.Errorf("schedule saved but failed to record edit %s: %w", edit.ID, err)
	}
	result.Edit = edit

	logger.Info("Schedule edited",
		zap.String("competition_id", competitionID),
		zap.String("edit_id", edit.ID),
		zap.Int("created", edit.Created),
		zap.Int("removed", edit.Removed),
		zap.Int("updated", edit.Updated))

	return result, nil
}
