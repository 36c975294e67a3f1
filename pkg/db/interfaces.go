package db

import (
	"context"
	"errors"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

// ErrCompetitionNotFound is returned when a store has no document for a competition id
var ErrCompetitionNotFound = errors.New("competition not found")

// CompetitionStore defines the interface for reading and writing competition documents
type CompetitionStore interface {
	GetCompetition(ctx context.Context, competitionID string) (*model.Competition, error)
	SaveCompetition(ctx context.Context, comp *model.Competition) error
}

// ScheduleEditLog defines the interface for the history of applied schedule edits
type ScheduleEditLog interface {
	InsertScheduleEdit(ctx context.Context, edit *ScheduleEdit) error
	GetScheduleEdits(ctx context.Context, competitionID string) ([]ScheduleEdit, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	CompetitionStore
	ScheduleEditLog
}
