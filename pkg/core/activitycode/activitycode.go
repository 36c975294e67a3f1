package activitycode

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// otherPrefix marks non-competition activities such as "other-lunch"
const otherPrefix = "other"

// MalformedCodeError is returned when a string is not a valid activity code
type MalformedCodeError struct {
	Code   string
	Reason string
}

func (e *MalformedCodeError) Error() string {
	return fmt.Sprintf("malformed activity code %q: %s", e.Code, e.Reason)
}

// ActivityCode identifies an event, round, group and attempt.
// Round, Group and Attempt are zero-valued when absent.
type ActivityCode struct {
	EventID string
	Round   int
	Group   string
	Attempt int

	// groupName is the display label set by WithGroup; empty for parsed codes
	groupName string
}

// New returns the code for a round of an event
func New(eventID string, round int) ActivityCode {
	return ActivityCode{EventID: eventID, Round: round}
}

// Parse parses a code of the form event[-rN[-gG[-aN]]]
func Parse(code string) (ActivityCode, error) {
	if code == "" {
		return ActivityCode{}, &MalformedCodeError{Code: code, Reason: "empty code"}
	}

	parts := strings.Split(code, "-")
	result := ActivityCode{EventID: parts[0]}
	rest := parts[1:]

	if parts[0] == otherPrefix {
		if len(rest) == 0 || rest[0] == "" {
			return ActivityCode{}, &MalformedCodeError{Code: code, Reason: "missing activity name after \"other\""}
		}
		result.EventID = otherPrefix + "-" + rest[0]
		rest = rest[1:]
	}

	if result.EventID == "" {
		return ActivityCode{}, &MalformedCodeError{Code: code, Reason: "missing event id"}
	}

	// Components must appear in order r, g, a, each at most once
	next := 0
	order := "rga"
	for _, part := range rest {
		if len(part) < 2 {
			return ActivityCode{}, &MalformedCodeError{Code: code, Reason: fmt.Sprintf("invalid component %q", part)}
		}
		idx := strings.IndexByte(order, part[0])
		if idx < next {
			return ActivityCode{}, &MalformedCodeError{Code: code, Reason: fmt.Sprintf("unexpected component %q", part)}
		}
		next = idx + 1
		value := part[1:]

		switch part[0] {
		case 'r':
			round, err := strconv.Atoi(value)
			if err != nil || strconv.Itoa(round) != value {
				return ActivityCode{}, &MalformedCodeError{Code: code, Reason: fmt.Sprintf("round %q is not numeric", value)}
			}
			if round < 1 {
				return ActivityCode{}, &MalformedCodeError{Code: code, Reason: fmt.Sprintf("round must be at least 1, got %d", round)}
			}
			result.Round = round
		case 'g':
			if result.Round == 0 {
				return ActivityCode{}, &MalformedCodeError{Code: code, Reason: "group without round"}
			}
			result.Group = value
		case 'a':
			if result.Round == 0 {
				return ActivityCode{}, &MalformedCodeError{Code: code, Reason: "attempt without round"}
			}
			attempt, err := strconv.Atoi(value)
			if err != nil || attempt < 1 || strconv.Itoa(attempt) != value {
				return ActivityCode{}, &MalformedCodeError{Code: code, Reason: fmt.Sprintf("attempt %q is not a positive number", value)}
			}
			result.Attempt = attempt
		}
	}

	return result, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(code string) ActivityCode {
	parsed, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return parsed
}

// String returns the canonical form of the code
func (c ActivityCode) String() string {
	var b strings.Builder
	b.WriteString(c.EventID)
	if c.Round > 0 {
		b.WriteString("-r")
		b.WriteString(strconv.Itoa(c.Round))
	}
	if c.Group != "" {
		b.WriteString("-g")
		b.WriteString(c.Group)
	}
	if c.Attempt > 0 {
		b.WriteString("-a")
		b.WriteString(strconv.Itoa(c.Attempt))
	}
	return b.String()
}

// ID returns the form used as a map key elsewhere. It is the canonical string.
func (c ActivityCode) ID() string {
	return c.String()
}

// WithGroup returns a copy of the code for a group with the given display label.
// The group identifier is the label without whitespace or separators, so "Blue 2" becomes "Blue2".
func (c ActivityCode) WithGroup(label string) ActivityCode {
	group := c
	group.Group = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '.' {
			return -1
		}
		return r
	}, label)
	group.groupName = label
	return group
}

// GroupName returns the display label of the group, falling back to the group identifier
func (c ActivityCode) GroupName() string {
	if c.groupName != "" {
		return c.groupName
	}
	return c.Group
}

// RoundCode returns the code with group and attempt removed
func (c ActivityCode) RoundCode() ActivityCode {
	return ActivityCode{EventID: c.EventID, Round: c.Round}
}

// IsOther reports whether the code is a non-competition activity
func (c ActivityCode) IsOther() bool {
	return strings.HasPrefix(c.EventID, otherPrefix+"-")
}

// Equal compares identity, ignoring the display label
func (c ActivityCode) Equal(other ActivityCode) bool {
	return c.EventID == other.EventID &&
		c.Round == other.Round &&
		c.Group == other.Group &&
		c.Attempt == other.Attempt
}
