package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/db"
)

// GetCompetition loads the stored document for a competition
func (d *DB) GetCompetition(ctx context.Context, competitionID string) (*model.Competition, error) {
	var document []byte
	err := d.pool.QueryRow(ctx, `
		SELECT document FROM competition WHERE id = $1
	`, competitionID).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrCompetitionNotFound, competitionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query competition %s: %w", competitionID, err)
	}

	var comp model.Competition
	if err := json.Unmarshal(document, &comp); err != nil {
		return nil, fmt.Errorf("failed to decode competition %s: %w", competitionID, err)
	}
	return &comp, nil
}

// SaveCompetition inserts or replaces the stored document for a competition
func (d *DB) SaveCompetition(ctx context.Context, comp *model.Competition) error {
	document, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("failed to encode competition %s: %w", comp.ID, err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO competition (id, name, document, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, document = EXCLUDED.document, updated_at = NOW()
	`, comp.ID, comp.Name, document)
	if err != nil {
		return fmt.Errorf("failed to save competition %s: %w", comp.ID, err)
	}

	d.logger.Debug("Saved competition", zap.String("competition_id", comp.ID), zap.Int("bytes", len(document)))
	return nil
}
