package schedule

import (
	"fmt"
	"regexp"
	"strconv"
)

var adjustmentPattern = regexp.MustCompile(`[+-]\d+`)

// AdjustmentStep removes Count groups from the front (FromStart) or back of a list
type AdjustmentStep struct {
	FromStart bool
	Count     int
}

// ParseAdjustment scans free text for signed integers. "+N" drops the first N
// groups and "-N" drops the last N; everything else in the text is ignored,
// so "+1 -2" drops the first group and then the last two. Note that a range
// such as "1-2" is read as "-2".
func ParseAdjustment(text string) ([]AdjustmentStep, error) {
	matches := adjustmentPattern.FindAllString(text, -1)
	steps := make([]AdjustmentStep, 0, len(matches))
	for _, match := range matches {
		count, err := strconv.Atoi(match[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid adjustment %q: %w", match, err)
		}
		steps = append(steps, AdjustmentStep{FromStart: match[0] == '+', Count: count})
	}
	return steps, nil
}

// ApplyAdjustment applies the steps in order, each against the list left by the previous one
func ApplyAdjustment[T any](items []T, steps []AdjustmentStep) []T {
	for _, step := range steps {
		count := min(step.Count, len(items))
		if step.FromStart {
			items = items[count:]
		} else {
			items = items[:len(items)-count]
		}
	}
	return items
}
