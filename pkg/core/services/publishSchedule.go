package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/pkg/clients/sheetsclient"
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/schedule"
)

const (
	tabTitleLayout = "Mon Jan 02 2006"
	slotTimeLayout = "15:04"
)

// SchedulePublisher defines the sheets operation needed to publish a schedule
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, published *sheetsclient.PublishedSchedule) error
}

// PublishSchedule publishes a competition's aggregated schedule, one tab per day
func PublishSchedule(
	ctx context.Context,
	store CompetitionReader,
	publisher SchedulePublisher,
	logger *zap.Logger,
	competitionID string,
	spreadsheetID string,
) (*sheetsclient.PublishedSchedule, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("no spreadsheet configured for publishing")
	}

	view, err := ViewSchedule(ctx, store, logger, competitionID)
	if err != nil {
		return nil, err
	}

	published := buildPublishedSchedule(view)

	logger.Debug("Publishing schedule",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.Int("days", len(published.Days)))

	if err := publisher.PublishSchedule(spreadsheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("competition_id", competitionID), zap.Int("days", len(published.Days)))
	return published, nil
}

// buildPublishedSchedule converts the view to sheet rows. Rooms are ordered by id.
func buildPublishedSchedule(view *schedule.CompetitionView) *sheetsclient.PublishedSchedule {
	rooms := make([]*model.Room, 0, len(view.Rooms))
	for _, room := range view.Rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })

	published := &sheetsclient.PublishedSchedule{}
	for _, room := range rooms {
		published.Rooms = append(published.Rooms, room.Name)
	}

	for _, day := range view.Days {
		publishedDay := sheetsclient.PublishedDay{Title: day.Date.Format(tabTitleLayout)}

		for _, slot := range day.Slots {
			publishedSlot := sheetsclient.PublishedSlot{
				Time:      formatRange(slot.StartTime, slot.EndTime),
				Activity:  slot.Code.ID(),
				Groups:    slot.NumGroups,
				RoomTimes: make(map[string]string, len(slot.Activities)),
			}
			for _, roomActivity := range slot.Activities {
				publishedSlot.RoomTimes[roomActivity.Room.Name] = formatRange(roomActivity.StartTime, roomActivity.EndTime)
			}
			publishedDay.Slots = append(publishedDay.Slots, publishedSlot)
		}

		published.Days = append(published.Days, publishedDay)
	}

	return published
}

func formatRange(start, end time.Time) string {
	return start.Format(slotTimeLayout) + " - " + end.Format(slotTimeLayout)
}
