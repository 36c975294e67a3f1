package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/natshelper/pkg/core/activitycode"
	"github.com/jakechorley/natshelper/pkg/core/extension"
	"github.com/jakechorley/natshelper/pkg/core/model"
)

// EditConfig contains the configuration for applying schedule edits
type EditConfig struct {
	// Edits to apply, usually from ParseEdits
	Edits []ActivityEdit

	// ExtensionNamespace is where room adjustments are stored (defaults to extension.DefaultNamespace)
	ExtensionNamespace string
}

// ChangeKind describes what an edit did to a room's activity
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeRemoved ChangeKind = "removed"
	ChangeUpdated ChangeKind = "updated"
)

// ActivityChange records one room activity touched by an edit
type ActivityChange struct {
	Kind       ChangeKind
	Date       string
	Code       string
	RoomID     int
	ActivityID int
	Groups     int
}

// EditOutcome represents the result of applying a batch of edits
type EditOutcome struct {
	Changes []ActivityChange

	// NextID is the id the next allocated activity would receive
	NextID int
}

// editor applies edits to a working copy of the competition
type editor struct {
	comp      *model.Competition
	ids       *IDAllocator
	namespace string
	startDate time.Time
	changes   []ActivityChange
}

// ApplyEdits applies every edit to the competition in memory.
//
// The batch is all-or-nothing: edits are applied to a copy of the document and
// the competition is only replaced once every edit has succeeded. Persisting the
// result is left to the caller.
func ApplyEdits(comp *model.Competition, cfg EditConfig) (*EditOutcome, error) {
	working, err := comp.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy competition: %w", err)
	}

	startDate, err := working.Schedule.ParseStartDate()
	if err != nil {
		return nil, err
	}

	namespace := cfg.ExtensionNamespace
	if namespace == "" {
		namespace = extension.DefaultNamespace
	}

	e := &editor{
		comp:      working,
		ids:       NewIDAllocator(working),
		namespace: namespace,
		startDate: startDate,
	}

	for _, edit := range cfg.Edits {
		if err := e.applyEdit(edit); err != nil {
			return nil, err
		}
	}

	*comp = *working

	return &EditOutcome{
		Changes: e.changes,
		NextID:  e.ids.last + 1,
	}, nil
}

// applyEdit applies one (date, code) edit to every room of every venue
func (e *editor) applyEdit(edit ActivityEdit) error {
	for _, venue := range e.comp.Schedule.Venues {
		for _, room := range venue.Rooms {
			if err := e.applyRoomEdit(edit, venue, room); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *editor) applyRoomEdit(edit ActivityEdit, venue *model.Venue, room *model.Room) error {
	conflict := func(format string, args ...any) error {
		return &ScheduleEditConflict{
			Date:   edit.Date,
			Code:   edit.Code.String(),
			RoomID: room.ID,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	loc, err := room.Location(venue)
	if err != nil {
		return conflict("cannot resolve timezone: %v", err)
	}

	start, err := time.ParseInLocation(EditDateLayout+" "+EditTimeLayout, edit.Date+" "+edit.Start, loc)
	if err != nil {
		return conflict("invalid start %q: %v", edit.Start, err)
	}
	end, err := time.ParseInLocation(EditDateLayout+" "+EditTimeLayout, edit.Date+" "+edit.End, loc)
	if err != nil {
		return conflict("invalid end %q: %v", edit.End, err)
	}
	if end.Before(start) {
		return conflict("end %s is before start %s", edit.End, edit.Start)
	}

	day := DayIndex(e.startDate, start)
	if day < 0 || day >= e.comp.Schedule.NumberOfDays {
		return conflict("date is outside the %d day competition starting %s", e.comp.Schedule.NumberOfDays, e.comp.Schedule.StartDate)
	}

	activityIdx, err := findRoomActivity(room, edit, loc)
	if err != nil {
		return conflict("%v", err)
	}

	roomEdit := edit.Room(room.ID)

	var activity *model.Activity
	if activityIdx >= 0 {
		activity = room.Activities[activityIdx]
	}

	kind := ChangeUpdated
	switch {
	case activity == nil && roomEdit.Active:
		activity = &model.Activity{
			ID:              e.ids.Next(),
			Name:            edit.Code.String(),
			ActivityCode:    edit.Code.String(),
			ChildActivities: []*model.ChildActivity{},
			Extensions:      []*model.Extension{},
		}
		room.Activities = append(room.Activities, activity)
		kind = ChangeCreated
	case activity != nil && !roomEdit.Active:
		room.Activities = append(room.Activities[:activityIdx], room.Activities[activityIdx+1:]...)
		e.record(ChangeRemoved, edit, room, activity)
	}

	if !roomEdit.Active {
		return nil
	}

	if err := extension.Store(activity, extension.TypeActivity, e.namespace, extension.ActivityData{
		Adjustment: roomEdit.Adjustment,
	}); err != nil {
		return fmt.Errorf("failed to store adjustment for activity %d: %w", activity.ID, err)
	}

	if edit.NumGroups == 0 {
		activity.StartTime = start.UTC()
		activity.EndTime = end.UTC()
		activity.ChildActivities = []*model.ChildActivity{}
		e.record(kind, edit, room, activity)
		return nil
	}

	e.resizeGroups(activity, edit.NumGroups)
	assignGroupSlices(activity, edit.Code, groupLabel(room), start, end)

	steps, err := ParseAdjustment(roomEdit.Adjustment)
	if err != nil {
		return &InvalidAdjustmentError{Adjustment: roomEdit.Adjustment, Code: edit.Code.String(), RoomID: room.ID, Reason: err.Error()}
	}
	remaining := ApplyAdjustment(activity.ChildActivities, steps)
	if len(remaining) == 0 {
		return &InvalidAdjustmentError{
			Adjustment: roomEdit.Adjustment,
			Code:       edit.Code.String(),
			RoomID:     room.ID,
			Reason:     fmt.Sprintf("removes all %d groups", edit.NumGroups),
		}
	}
	activity.ChildActivities = remaining

	activity.StartTime = remaining[0].StartTime
	activity.EndTime = remaining[len(remaining)-1].EndTime
	e.record(kind, edit, room, activity)

	return nil
}

// resizeGroups truncates the child activity list from the tail, or appends
// freshly allocated child activities, until it has exactly n entries
func (e *editor) resizeGroups(activity *model.Activity, n int) {
	if len(activity.ChildActivities) > n {
		activity.ChildActivities = activity.ChildActivities[:n]
	}
	for len(activity.ChildActivities) < n {
		activity.ChildActivities = append(activity.ChildActivities, &model.ChildActivity{
			ID:              e.ids.Next(),
			ChildActivities: []*model.ChildActivity{},
			Extensions:      []*model.Extension{},
		})
	}
}

func (e *editor) record(kind ChangeKind, edit ActivityEdit, room *model.Room, activity *model.Activity) {
	e.changes = append(e.changes, ActivityChange{
		Kind:       kind,
		Date:       edit.Date,
		Code:       edit.Code.String(),
		RoomID:     room.ID,
		ActivityID: activity.ID,
		Groups:     len(activity.ChildActivities),
	})
}

// findRoomActivity returns the index of the room's activity for the edit's
// code whose local start date matches the edit date, or -1 if there is none
func findRoomActivity(room *model.Room, edit ActivityEdit, loc *time.Location) (int, error) {
	found := -1
	for idx, activity := range room.Activities {
		if activity.ActivityCode != edit.Code.String() {
			continue
		}
		if activity.StartTime.In(loc).Format(EditDateLayout) != edit.Date {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("activities %d and %d both match", room.Activities[found].ID, activity.ID)
		}
		found = idx
	}
	return found, nil
}

// assignGroupSlices splits [start, end) into equal slices, one per child activity.
// The last slice ends exactly at end.
func assignGroupSlices(activity *model.Activity, code activitycode.ActivityCode, label string, start, end time.Time) {
	numGroups := len(activity.ChildActivities)
	groupLength := end.Sub(start) / time.Duration(numGroups)

	for idx, child := range activity.ChildActivities {
		groupLabel := label
		if numGroups > 1 {
			groupLabel += " " + strconv.Itoa(idx+1)
		}
		groupCode := code.WithGroup(groupLabel)

		child.Name = groupCode.GroupName()
		child.ActivityCode = groupCode.ID()
		child.StartTime = start.Add(groupLength * time.Duration(idx)).UTC()
		child.EndTime = start.Add(groupLength * time.Duration(idx+1)).UTC()
		if idx == numGroups-1 {
			child.EndTime = end.UTC()
		}
	}
}

// groupLabel is the first word of the room name, used to name its groups.
// Words made only of code separators are skipped since they leave no group id.
func groupLabel(room *model.Room) string {
	for _, word := range strings.Fields(room.Name) {
		if strings.Trim(word, "-.") != "" {
			return word
		}
	}
	return "Room" + strconv.Itoa(room.ID)
}
