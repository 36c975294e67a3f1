package model

// Each entity decodes through a method-less alias so that its own fields are
// handled by encoding/json and only unknown keys land in Extra.

func (c *Competition) UnmarshalJSON(data []byte) error {
	type plain Competition
	extra, err := decodeWithExtra(data, (*plain)(c))
	c.Extra = extra
	return err
}

func (c Competition) MarshalJSON() ([]byte, error) {
	type plain Competition
	c.Events = orEmpty(c.Events)
	c.Persons = orEmpty(c.Persons)
	c.Extensions = orEmpty(c.Extensions)
	return encodeWithExtra(plain(c), c.Extra)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	extra, err := decodeWithExtra(data, (*plain)(e))
	e.Extra = extra
	return err
}

func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	e.Rounds = orEmpty(e.Rounds)
	e.Extensions = orEmpty(e.Extensions)
	return encodeWithExtra(plain(e), e.Extra)
}

func (r *Round) UnmarshalJSON(data []byte) error {
	type plain Round
	extra, err := decodeWithExtra(data, (*plain)(r))
	r.Extra = extra
	return err
}

func (r Round) MarshalJSON() ([]byte, error) {
	type plain Round
	return encodeWithExtra(plain(r), r.Extra)
}

func (p *Person) UnmarshalJSON(data []byte) error {
	type plain Person
	extra, err := decodeWithExtra(data, (*plain)(p))
	p.Extra = extra
	return err
}

func (p Person) MarshalJSON() ([]byte, error) {
	type plain Person
	p.Assignments = orEmpty(p.Assignments)
	p.PersonalBests = orEmpty(p.PersonalBests)
	p.Extensions = orEmpty(p.Extensions)
	return encodeWithExtra(plain(p), p.Extra)
}

func (r *Registration) UnmarshalJSON(data []byte) error {
	type plain Registration
	extra, err := decodeWithExtra(data, (*plain)(r))
	r.Extra = extra
	return err
}

func (r Registration) MarshalJSON() ([]byte, error) {
	type plain Registration
	r.EventIDs = orEmpty(r.EventIDs)
	return encodeWithExtra(plain(r), r.Extra)
}

func (pb *PersonalBest) UnmarshalJSON(data []byte) error {
	type plain PersonalBest
	extra, err := decodeWithExtra(data, (*plain)(pb))
	pb.Extra = extra
	return err
}

func (pb PersonalBest) MarshalJSON() ([]byte, error) {
	type plain PersonalBest
	return encodeWithExtra(plain(pb), pb.Extra)
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	type plain Schedule
	extra, err := decodeWithExtra(data, (*plain)(s))
	s.Extra = extra
	return err
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	type plain Schedule
	s.Venues = orEmpty(s.Venues)
	return encodeWithExtra(plain(s), s.Extra)
}

func (v *Venue) UnmarshalJSON(data []byte) error {
	type plain Venue
	extra, err := decodeWithExtra(data, (*plain)(v))
	v.Extra = extra
	return err
}

func (v Venue) MarshalJSON() ([]byte, error) {
	type plain Venue
	v.Rooms = orEmpty(v.Rooms)
	v.Extensions = orEmpty(v.Extensions)
	return encodeWithExtra(plain(v), v.Extra)
}

func (r *Room) UnmarshalJSON(data []byte) error {
	type plain Room
	extra, err := decodeWithExtra(data, (*plain)(r))
	r.Extra = extra
	return err
}

func (r Room) MarshalJSON() ([]byte, error) {
	type plain Room
	r.Activities = orEmpty(r.Activities)
	r.Extensions = orEmpty(r.Extensions)
	return encodeWithExtra(plain(r), r.Extra)
}

func (a *Activity) UnmarshalJSON(data []byte) error {
	type plain Activity
	extra, err := decodeWithExtra(data, (*plain)(a))
	a.Extra = extra
	return err
}

func (a Activity) MarshalJSON() ([]byte, error) {
	type plain Activity
	a.ChildActivities = orEmpty(a.ChildActivities)
	a.Extensions = orEmpty(a.Extensions)
	return encodeWithExtra(plain(a), a.Extra)
}

func (c *ChildActivity) UnmarshalJSON(data []byte) error {
	type plain ChildActivity
	extra, err := decodeWithExtra(data, (*plain)(c))
	c.Extra = extra
	return err
}

func (c ChildActivity) MarshalJSON() ([]byte, error) {
	type plain ChildActivity
	c.ChildActivities = orEmpty(c.ChildActivities)
	c.Extensions = orEmpty(c.Extensions)
	return encodeWithExtra(plain(c), c.Extra)
}
