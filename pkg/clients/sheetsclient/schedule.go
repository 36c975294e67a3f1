package sheetsclient

import (
	"fmt"

	"go.uber.org/zap"
)

// Fixed columns of a published day tab. Room columns follow them, then Notes.
const (
	colTime     = "Time"
	colActivity = "Activity"
	colGroups   = "Groups"
	colNotes    = "Notes"

	headerRow = 2 // zero-based; the first two rows are left for a title
)

// PublishedSlot is one row of a published day
type PublishedSlot struct {
	Time     string // e.g. "09:00 - 10:00"
	Activity string // activity code id, e.g. "333-r1"
	Groups   int

	// RoomTimes maps a room name to the time range it runs the slot; rooms not running it are absent
	RoomTimes map[string]string
}

// PublishedDay is one tab of the published schedule
type PublishedDay struct {
	Title string // e.g. "Thu Jul 04 2024"
	Slots []PublishedSlot
}

// PublishedSchedule is the complete published schedule
type PublishedSchedule struct {
	Rooms []string // room column order
	Days  []PublishedDay
}

// PublishSchedule writes one tab per day.
// Tabs that do not exist are created. Existing tabs are rewritten, keeping the
// Notes cell of every activity that is still on the schedule.
func (c *Client) PublishSchedule(spreadsheetID string, published *PublishedSchedule) error {
	titles, err := c.SheetTitles(spreadsheetID)
	if err != nil {
		return err
	}

	for _, day := range published.Days {
		var existing [][]interface{}
		if titles[day.Title] {
			existing, err = c.GetValues(spreadsheetID, fmt.Sprintf("'%s'!A1:ZZ", day.Title))
			if err != nil {
				return fmt.Errorf("failed to read existing tab %s: %w", day.Title, err)
			}
		} else {
			if _, err := c.CreateSheet(spreadsheetID, day.Title); err != nil {
				return fmt.Errorf("failed to create tab %s: %w", day.Title, err)
			}
		}

		rows := BuildDayRows(published.Rooms, day, existing)
		err = c.ReplaceValues(spreadsheetID,
			fmt.Sprintf("'%s'!A1:ZZ", day.Title),
			fmt.Sprintf("'%s'!A1", day.Title),
			rows,
		)
		if err != nil {
			return fmt.Errorf("failed to write tab %s: %w", day.Title, err)
		}

		c.logger.Debug("Published schedule day",
			zap.String("tab", day.Title),
			zap.Int("slots", len(day.Slots)),
			zap.Bool("created", !titles[day.Title]))
	}

	return nil
}

// BuildDayRows lays out a day tab with a two-row gap above the header.
// existing is the tab's current content, or nil for a new tab.
func BuildDayRows(rooms []string, day PublishedDay, existing [][]interface{}) [][]interface{} {
	notes := existingNotes(existing)

	header := []interface{}{colTime, colActivity, colGroups}
	for _, room := range rooms {
		header = append(header, room)
	}
	header = append(header, colNotes)

	rows := [][]interface{}{
		{}, // Row 1 (empty)
		{}, // Row 2 (empty)
		header,
	}

	for _, slot := range day.Slots {
		row := []interface{}{slot.Time, slot.Activity, slot.Groups}
		for _, room := range rooms {
			row = append(row, slot.RoomTimes[room])
		}
		row = append(row, notes[slot.Activity])
		rows = append(rows, row)
	}

	return rows
}

// existingNotes maps activity ids to their Notes cell in a previously published tab
func existingNotes(existing [][]interface{}) map[string]interface{} {
	notes := make(map[string]interface{})
	if len(existing) <= headerRow {
		return notes
	}

	header := existing[headerRow]
	activityCol := findColumnIndex(header, colActivity)
	notesCol := findColumnIndex(header, colNotes)
	if activityCol == -1 || notesCol == -1 {
		return notes
	}

	for _, row := range existing[headerRow+1:] {
		if activityCol >= len(row) || notesCol >= len(row) {
			continue
		}
		activity, ok := row[activityCol].(string)
		if !ok || activity == "" {
			continue
		}
		notes[activity] = row[notesCol]
	}
	return notes
}

// findColumnIndex finds the index of a column by its header name
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if str, ok := cell.(string); ok && str == columnName {
			return i
		}
	}
	return -1
}
