package staffing

import (
	"fmt"
	"time"

	"github.com/jakechorley/natshelper/pkg/core/activitycode"
	"github.com/jakechorley/natshelper/pkg/core/model"
)

// Group is one staffable child activity together with where it happens
type Group struct {
	Activity *model.ChildActivity
	Parent   *model.Activity
	Room     *model.Room
	Venue    *model.Venue

	// Code is the parent activity's code
	Code activitycode.ActivityCode

	StartTime time.Time
	EndTime   time.Time
}

// ID returns the child activity id
func (g *Group) ID() int {
	return g.Activity.ID
}

// Location returns the timezone of the group's room
func (g *Group) Location() (*time.Location, error) {
	return g.Room.Location(g.Venue)
}

// AllGroups lists every child activity of every room in schedule order of
// venues, rooms and activities
func AllGroups(comp *model.Competition) ([]*Group, error) {
	var groups []*Group
	for _, venue := range comp.Schedule.Venues {
		for _, room := range venue.Rooms {
			for _, activity := range room.Activities {
				code, err := activitycode.Parse(activity.ActivityCode)
				if err != nil {
					return nil, fmt.Errorf("activity %d: %w", activity.ID, err)
				}
				for _, child := range activity.ChildActivities {
					groups = append(groups, &Group{
						Activity:  child,
						Parent:    activity,
						Room:      room,
						Venue:     venue,
						Code:      code,
						StartTime: child.StartTime,
						EndTime:   child.EndTime,
					})
				}
			}
		}
	}
	return groups, nil
}
