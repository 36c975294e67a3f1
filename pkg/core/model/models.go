package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Assignment codes used throughout the staffing engine
const (
	AssignmentCompetitor = "competitor"
	StaffPrefix          = "staff-"
)

// Competition is the WCIF competition document
type Competition struct {
	FormatVersion string       `json:"formatVersion,omitempty"`
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ShortName     string       `json:"shortName,omitempty"`
	Events        []Event      `json:"events"`
	Persons       []*Person    `json:"persons"`
	Schedule      Schedule     `json:"schedule"`
	Extensions    []*Extension `json:"extensions"`

	Extra Extra `json:"-"`
}

// Event is a competed event with its rounds
type Event struct {
	ID         string       `json:"id"`
	Rounds     []Round      `json:"rounds"`
	Extensions []*Extension `json:"extensions"`

	Extra Extra `json:"-"`
}

// Round is a single round of an event
type Round struct {
	ID                   string                `json:"id"`
	AdvancementCondition *AdvancementCondition `json:"advancementCondition"`

	Extra Extra `json:"-"`
}

// AdvancementCondition describes how competitors proceed to the next round
type AdvancementCondition struct {
	Type  string `json:"type"`
	Level int    `json:"level"`
}

// Person is a registered competitor or staff member
type Person struct {
	Name          string         `json:"name"`
	WcaUserID     int            `json:"wcaUserId"`
	WcaID         string         `json:"wcaId,omitempty"`
	RegistrantID  *int           `json:"registrantId,omitempty"`
	Registration  *Registration  `json:"registration"`
	Assignments   []Assignment   `json:"assignments"`
	PersonalBests []PersonalBest `json:"personalBests"`
	Extensions    []*Extension   `json:"extensions"`

	Extra Extra `json:"-"`
}

// Registration holds the events a person registered for
type Registration struct {
	EventIDs []string `json:"eventIds"`
	Status   string   `json:"status,omitempty"`

	Extra Extra `json:"-"`
}

// Assignment links a person to an activity with a role code
type Assignment struct {
	ActivityID     int    `json:"activityId"`
	AssignmentCode string `json:"assignmentCode"`
	StationNumber  *int   `json:"stationNumber"`
}

// PersonalBest is a best result for one event
type PersonalBest struct {
	EventID      string `json:"eventId"`
	Best         int    `json:"best"`
	WorldRanking int    `json:"worldRanking,omitempty"`
	Type         string `json:"type"`

	Extra Extra `json:"-"`
}

// Result is the value returned by a personal-best lookup
type Result struct {
	EventID string
	Type    string
	Value   int
}

// Schedule is the competition schedule
type Schedule struct {
	StartDate    string   `json:"startDate"`
	NumberOfDays int      `json:"numberOfDays"`
	Venues       []*Venue `json:"venues"`

	Extra Extra `json:"-"`
}

// Venue is a physical location containing rooms
type Venue struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Timezone   string       `json:"timezone"`
	Rooms      []*Room      `json:"rooms"`
	Extensions []*Extension `json:"extensions"`

	Extra Extra `json:"-"`
}

// Room owns its activities. Timezone is optional and falls back to the venue timezone.
type Room struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Color      string       `json:"color,omitempty"`
	Timezone   string       `json:"timezone,omitempty"`
	Activities []*Activity  `json:"activities"`
	Extensions []*Extension `json:"extensions"`

	Extra Extra `json:"-"`
}

// Activity is a timed activity in a room
type Activity struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	ActivityCode    string           `json:"activityCode"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	ChildActivities []*ChildActivity `json:"childActivities"`
	ScrambleSetID   *int             `json:"scrambleSetId"`
	Extensions      []*Extension     `json:"extensions"`

	Extra Extra `json:"-"`
}

// ChildActivity is one group of a parent activity. Nested children are
// allowed by WCIF but never produced by this tool.
type ChildActivity struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	ActivityCode    string           `json:"activityCode"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	ChildActivities []*ChildActivity `json:"childActivities"`
	ScrambleSetID   *int             `json:"scrambleSetId"`
	Extensions      []*Extension     `json:"extensions"`

	Extra Extra `json:"-"`
}

// Extension is a namespaced data record attached to a WCIF entity
type Extension struct {
	ID      string         `json:"id"`
	SpecURL string         `json:"specUrl"`
	Data    map[string]any `json:"data"`
}

// Extendable is implemented by every entity that carries extensions
type Extendable interface {
	ExtensionList() *[]*Extension
}

func (c *Competition) ExtensionList() *[]*Extension   { return &c.Extensions }
func (p *Person) ExtensionList() *[]*Extension        { return &p.Extensions }
func (v *Venue) ExtensionList() *[]*Extension         { return &v.Extensions }
func (r *Room) ExtensionList() *[]*Extension          { return &r.Extensions }
func (a *Activity) ExtensionList() *[]*Extension      { return &a.Extensions }
func (c *ChildActivity) ExtensionList() *[]*Extension { return &c.Extensions }

// Location returns the venue timezone
func (v *Venue) Location() (*time.Location, error) {
	return loadLocation(v.Timezone)
}

// Location returns the room's effective timezone: its own if set, otherwise the venue's
func (r *Room) Location(venue *Venue) (*time.Location, error) {
	if r.Timezone != "" {
		return loadLocation(r.Timezone)
	}
	return venue.Location()
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("timezone is not set")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseStartDate parses the schedule start date as a calendar date
func (s *Schedule) ParseStartDate() (time.Time, error) {
	start, err := time.Parse("2006-01-02", s.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule start date %q: %w", s.StartDate, err)
	}
	return start, nil
}

// MaxActivityID returns the highest activity id in use, including child activities
func (c *Competition) MaxActivityID() int {
	maxID := 0
	for _, venue := range c.Schedule.Venues {
		for _, room := range venue.Rooms {
			for _, activity := range room.Activities {
				maxID = max(maxID, activity.ID)
				for _, child := range activity.ChildActivities {
					maxID = max(maxID, child.maxID())
				}
			}
		}
	}
	return maxID
}

func (c *ChildActivity) maxID() int {
	maxID := c.ID
	for _, child := range c.ChildActivities {
		maxID = max(maxID, child.maxID())
	}
	return maxID
}

// Clone returns a deep copy of the competition
func (c *Competition) Clone() (*Competition, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal competition: %w", err)
	}
	var clone Competition
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("failed to unmarshal competition: %w", err)
	}
	return &clone, nil
}

// PersonByUserID finds a person by WCA user id
func (c *Competition) PersonByUserID(userID int) *Person {
	for _, person := range c.Persons {
		if person.WcaUserID == userID {
			return person
		}
	}
	return nil
}

// StaffAssignments returns the person's assignments whose code starts with "staff-"
func (p *Person) StaffAssignments() []Assignment {
	var staff []Assignment
	for _, assignment := range p.Assignments {
		if assignment.IsStaff() {
			staff = append(staff, assignment)
		}
	}
	return staff
}

// IsStaff reports whether the assignment is a staffing job
func (a Assignment) IsStaff() bool {
	return strings.HasPrefix(a.AssignmentCode, StaffPrefix)
}

// Job returns the job name of a staff assignment ("staff-judge" -> "judge")
func (a Assignment) Job() string {
	if !a.IsStaff() {
		return ""
	}
	return strings.TrimPrefix(a.AssignmentCode, StaffPrefix)
}

// PersonalBest returns the person's best result for an event.
// The average is preferred; the single is used when no average is recorded.
func (p *Person) PersonalBest(eventID string) *Result {
	var single *Result
	for _, pb := range p.PersonalBests {
		if pb.EventID != eventID {
			continue
		}
		switch pb.Type {
		case "average":
			return &Result{EventID: pb.EventID, Type: pb.Type, Value: pb.Best}
		case "single":
			single = &Result{EventID: pb.EventID, Type: pb.Type, Value: pb.Best}
		}
	}
	return single
}
