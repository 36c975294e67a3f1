package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jakechorley/natshelper/pkg/db"
)

// InsertScheduleEdit records an applied batch of schedule edits
func (d *DB) InsertScheduleEdit(ctx context.Context, edit *db.ScheduleEdit) error {
	fields, err := json.Marshal(edit.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode schedule edit fields: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO schedule_edit (id, competition_id, applied_at, fields, created, removed, updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, edit.ID, edit.CompetitionID, edit.AppliedAt.UTC(), fields, edit.Created, edit.Removed, edit.Updated)
	if err != nil {
		return fmt.Errorf("failed to insert schedule edit: %w", err)
	}
	return nil
}

// GetScheduleEdits retrieves the edit history of a competition, oldest first
func (d *DB) GetScheduleEdits(ctx context.Context, competitionID string) ([]db.ScheduleEdit, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, competition_id, applied_at, fields, created, removed, updated
		FROM schedule_edit
		WHERE competition_id = $1
		ORDER BY applied_at, id
	`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule edits: %w", err)
	}
	defer rows.Close()

	var edits []db.ScheduleEdit
	for rows.Next() {
		var e db.ScheduleEdit
		var fields []byte
		if err := rows.Scan(&e.ID, &e.CompetitionID, &e.AppliedAt, &fields, &e.Created, &e.Removed, &e.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan schedule edit: %w", err)
		}
		if err := json.Unmarshal(fields, &e.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode schedule edit %s: %w", e.ID, err)
		}
		e.AppliedAt = e.AppliedAt.UTC()
		edits = append(edits, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule edits: %w", err)
	}

	return edits, nil
}
