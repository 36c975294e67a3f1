package schedule

import "github.com/jakechorley/natshelper/pkg/core/model"

// IDAllocator hands out activity ids that are unique across the competition.
// It is seeded once from a full scan and only ever counts upwards.
type IDAllocator struct {
	last int
}

// NewIDAllocator seeds an allocator from the highest id in the competition,
// including child activities
func NewIDAllocator(comp *model.Competition) *IDAllocator {
	return &IDAllocator{last: comp.MaxActivityID()}
}

// Next returns a fresh id
func (a *IDAllocator) Next() int {
	a.last++
	return a.last
}
