package scorers

import (
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
)

// Type aliases for test readability - shared across all scorer tests
type (
	ScoreContext = staffing.ScoreContext
	Group        = staffing.Group
	Snapshot     = staffing.Snapshot
	Person       = model.Person
	Assignment   = model.Assignment
)
