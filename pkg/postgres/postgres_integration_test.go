//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/db"
)

func startDatabase(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("natshelper"),
		postgrescontainer.WithUsername("natshelper"),
		postgrescontainer.WithPassword("natshelper"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := NewDB(ctx, connStr, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.RunMigrations(ctx))
	// A second run finds nothing pending
	require.NoError(t, database.RunMigrations(ctx))

	return database
}

func TestDB_CompetitionRoundTrip(t *testing.T) {
	database := startDatabase(t)
	ctx := context.Background()

	_, err := database.GetCompetition(ctx, "Nationals2024")
	assert.ErrorIs(t, err, db.ErrCompetitionNotFound)

	comp := &model.Competition{
		ID:   "Nationals2024",
		Name: "Nationals 2024",
		Schedule: model.Schedule{
			StartDate:    "2024-07-04",
			NumberOfDays: 3,
			Venues: []*model.Venue{
				{
					ID:       1,
					Name:     "Convention Center",
					Timezone: "America/New_York",
					Rooms:    []*model.Room{{ID: 1, Name: "Red Stage"}},
					Extra:    model.Extra{"latitudeMicrodegrees": json.RawMessage(`39952583`)},
				},
			},
		},
	}
	require.NoError(t, database.SaveCompetition(ctx, comp))

	comp.Name = "Nationals 2024 (renamed)"
	require.NoError(t, database.SaveCompetition(ctx, comp))

	stored, err := database.GetCompetition(ctx, "Nationals2024")
	require.NoError(t, err)
	assert.Equal(t, "Nationals 2024 (renamed)", stored.Name)
	require.Len(t, stored.Schedule.Venues, 1)
	assert.Equal(t, "Red Stage", stored.Schedule.Venues[0].Rooms[0].Name)
	assert.JSONEq(t, `39952583`, string(stored.Schedule.Venues[0].Extra["latitudeMicrodegrees"]))
}

func TestDB_ScheduleEdits(t *testing.T) {
	database := startDatabase(t)
	ctx := context.Background()

	require.NoError(t, database.SaveCompetition(ctx, &model.Competition{ID: "Nationals2024", Name: "Nationals 2024"}))

	first := &db.ScheduleEdit{
		ID:            uuid.NewString(),
		CompetitionID: "Nationals2024",
		AppliedAt:     time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
		Fields:        map[string]string{"20240704.333-r1.start": "09:00"},
		Created:       1,
	}
	second := &db.ScheduleEdit{
		ID:            uuid.NewString(),
		CompetitionID: "Nationals2024",
		AppliedAt:     time.Date(2024, time.June, 2, 12, 0, 0, 0, time.UTC),
		Fields:        map[string]string{"20240704.222-r1.start": "10:00"},
		Removed:       2,
	}
	require.NoError(t, database.InsertScheduleEdit(ctx, second))
	require.NoError(t, database.InsertScheduleEdit(ctx, first))

	edits, err := database.GetScheduleEdits(ctx, "Nationals2024")
	require.NoError(t, err)
	require.Len(t, edits, 2)

	assert.Equal(t, first.ID, edits[0].ID)
	assert.Equal(t, first.AppliedAt, edits[0].AppliedAt)
	assert.Equal(t, first.Fields, edits[0].Fields)
	assert.Equal(t, 1, edits[0].Created)
	assert.Equal(t, 2, edits[1].Removed)

	none, err := database.GetScheduleEdits(ctx, "Other2024")
	require.NoError(t, err)
	assert.Empty(t, none)
}
