package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jakechorley/natshelper/pkg/core/activitycode"
)

// Edit payload field names. Keys are "<date>.<code>.<field>" or
// "<date>.<code>.<roomId>.<roomField>".
const (
	FieldStart      = "start"
	FieldEnd        = "end"
	FieldGroups     = "groups"
	FieldActive     = "active"
	FieldAdjustment = "adjustment"
)

// Layouts of the date and time values in an edit payload
const (
	EditDateLayout = "20060102"
	EditTimeLayout = "15:04"
)

// RoomEdit is the per-room part of an activity edit
type RoomEdit struct {
	// Active is true when the room should run the activity
	Active bool

	// Adjustment is free text scanned for group adjustments (see ParseAdjustment)
	Adjustment string
}

// ActivityEdit is one logical edit of an activity code on one date.
//
// Start and End are both read on Date in the room's timezone, so an edit
// cannot move an activity across midnight. An End before Start is a
// ScheduleEditConflict rather than a time on the following day. Activities
// already spanning midnight in the document are still aggregated under their
// start day.
type ActivityEdit struct {
	Date      string // yyyyMMdd
	Code      activitycode.ActivityCode
	Start     string // HH:mm
	End       string // HH:mm
	NumGroups int

	// Rooms maps room id to its edit; rooms missing from the map are inactive
	Rooms map[int]RoomEdit
}

// Key returns the "<date>.<code>" prefix shared by every field of this edit
func (e ActivityEdit) Key() string {
	return e.Date + "." + e.Code.String()
}

// Room returns the edit for a room; rooms without fields are inactive
func (e ActivityEdit) Room(roomID int) RoomEdit {
	return e.Rooms[roomID]
}

// ParseEdits turns a flat form payload into activity edits.
//
// Only keys ending in ".start" start an edit, so each (date, code) pair is
// processed once; sibling fields are looked up from the same prefix.
// The presence of a "<roomId>.active" key marks the room active whatever its value.
// Keys that do not follow the payload layout are ignored.
//
// Edits are returned sorted by date, then activity code.
func ParseEdits(fields map[string]string) ([]ActivityEdit, error) {
	var edits []ActivityEdit

	for key := range fields {
		parts := strings.Split(key, ".")
		if len(parts) != 3 || parts[2] != FieldStart {
			continue
		}

		edit, err := parseEdit(fields, parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}

	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Date != edits[j].Date {
			return edits[i].Date < edits[j].Date
		}
		return edits[i].Code.ID() < edits[j].Code.ID()
	})

	return edits, nil
}

func parseEdit(fields map[string]string, date, codeStr string) (ActivityEdit, error) {
	code, err := activitycode.Parse(codeStr)
	if err != nil {
		return ActivityEdit{}, fmt.Errorf("invalid edit for %s.%s: %w", date, codeStr, err)
	}

	prefix := date + "." + codeStr + "."
	edit := ActivityEdit{
		Date:  date,
		Code:  code,
		Start: fields[prefix+FieldStart],
		Rooms: make(map[int]RoomEdit),
	}

	end, ok := fields[prefix+FieldEnd]
	if !ok {
		return ActivityEdit{}, fmt.Errorf("edit %s%s is missing", prefix, FieldEnd)
	}
	edit.End = end

	groups, ok := fields[prefix+FieldGroups]
	if !ok {
		return ActivityEdit{}, fmt.Errorf("edit %s%s is missing", prefix, FieldGroups)
	}
	numGroups, err := strconv.Atoi(strings.TrimSpace(groups))
	if err != nil || numGroups < 0 {
		return ActivityEdit{}, fmt.Errorf("edit %s%s must be a non-negative number, got %q", prefix, FieldGroups, groups)
	}
	edit.NumGroups = numGroups

	for key, value := range fields {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		roomParts := strings.Split(strings.TrimPrefix(key, prefix), ".")
		if len(roomParts) != 2 {
			continue
		}

		field := roomParts[1]
		if field != FieldActive && field != FieldAdjustment {
			continue
		}

		roomID, err := strconv.Atoi(roomParts[0])
		if err != nil {
			return ActivityEdit{}, fmt.Errorf("edit %s has invalid room id %q", key, roomParts[0])
		}

		room := edit.Rooms[roomID]
		switch field {
		case FieldActive:
			room.Active = true
		case FieldAdjustment:
			room.Adjustment = value
		}
		edit.Rooms[roomID] = room
	}

	return edit, nil
}
