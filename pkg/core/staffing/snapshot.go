package staffing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/natshelper/pkg/core/model"
)

// Snapshot holds lookups precomputed from a competition's schedule.
//
// A snapshot is immutable once built. It goes stale when the schedule changes;
// build a new one (and new scorers from it) after every edit. Generation
// identifies the build so stale scorers can be spotted in logs.
type Snapshot struct {
	Generation uuid.UUID

	groups  []*Group
	byID    map[int]*Group
	byRoom  map[int][]*Group
	byStart map[int64]map[int]struct{}
}

// NewSnapshot indexes every group of the competition
func NewSnapshot(comp *model.Competition) (*Snapshot, error) {
	groups, err := AllGroups(comp)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		Generation: uuid.New(),
		groups:     groups,
		byID:       make(map[int]*Group, len(groups)),
		byRoom:     make(map[int][]*Group),
		byStart:    make(map[int64]map[int]struct{}),
	}

	for _, group := range groups {
		s.byID[group.ID()] = group
		s.byRoom[group.Room.ID] = append(s.byRoom[group.Room.ID], group)

		start := group.StartTime.Unix()
		if s.byStart[start] == nil {
			s.byStart[start] = make(map[int]struct{})
		}
		s.byStart[start][group.ID()] = struct{}{}
	}

	return s, nil
}

// Groups returns every group in schedule order
func (s *Snapshot) Groups() []*Group {
	return s.groups
}

// Group returns the group with the given child activity id, or nil
func (s *Snapshot) Group(id int) *Group {
	return s.byID[id]
}

// Previous returns the first group in the same room that ends exactly when g starts
func (s *Snapshot) Previous(g *Group) *Group {
	for _, other := range s.byRoom[g.Room.ID] {
		if other.ID() != g.ID() && other.EndTime.Equal(g.StartTime) {
			return other
		}
	}
	return nil
}

// Next returns the first group in the same room that starts exactly when g ends
func (s *Snapshot) Next(g *Group) *Group {
	for _, other := range s.byRoom[g.Room.ID] {
		if other.ID() != g.ID() && other.StartTime.Equal(g.EndTime) {
			return other
		}
	}
	return nil
}

// StartsAt reports whether the group with the given id starts at t, in any room
func (s *Snapshot) StartsAt(t time.Time, groupID int) bool {
	_, ok := s.byStart[t.Unix()][groupID]
	return ok
}
