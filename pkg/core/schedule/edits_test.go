package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEdits_Basic(t *testing.T) {
	fields := map[string]string{
		"20240704.333-r1.start":        "09:00",
		"20240704.333-r1.end":          "10:00",
		"20240704.333-r1.groups":       "4",
		"20240704.333-r1.1.active":     "on",
		"20240704.333-r1.1.adjustment": "+1",
		"20240704.333-r1.2.adjustment": "-1",
	}

	edits, err := ParseEdits(fields)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	edit := edits[0]
	assert.Equal(t, "20240704", edit.Date)
	assert.Equal(t, "333-r1", edit.Code.ID())
	assert.Equal(t, "09:00", edit.Start)
	assert.Equal(t, "10:00", edit.End)
	assert.Equal(t, 4, edit.NumGroups)
	assert.Equal(t, "20240704.333-r1", edit.Key())

	assert.Equal(t, RoomEdit{Active: true, Adjustment: "+1"}, edit.Room(1))
	assert.Equal(t, RoomEdit{Active: false, Adjustment: "-1"}, edit.Room(2))
	assert.Equal(t, RoomEdit{}, edit.Room(3))
}

func TestParseEdits_ActiveValueIgnored(t *testing.T) {
	fields := map[string]string{
		"20240704.333-r1.start":    "09:00",
		"20240704.333-r1.end":      "10:00",
		"20240704.333-r1.groups":   "1",
		"20240704.333-r1.1.active": "",
	}

	edits, err := ParseEdits(fields)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	assert.True(t, edits[0].Room(1).Active)
}

func TestParseEdits_SortedByDateThenCode(t *testing.T) {
	fields := map[string]string{}
	for _, key := range []string{"20240705.222-r1", "20240704.333-r1", "20240704.222-r1"} {
		fields[key+".start"] = "09:00"
		fields[key+".end"] = "10:00"
		fields[key+".groups"] = "0"
	}

	edits, err := ParseEdits(fields)
	require.NoError(t, err)
	require.Len(t, edits, 3)

	assert.Equal(t, "20240704.222-r1", edits[0].Key())
	assert.Equal(t, "20240704.333-r1", edits[1].Key())
	assert.Equal(t, "20240705.222-r1", edits[2].Key())
}

func TestParseEdits_IgnoresUnrelatedKeys(t *testing.T) {
	fields := map[string]string{
		"csrf":                       "token",
		"20240704.333-r1.notes":      "bring timers",
		"20240704.333-r1.start":      "09:00",
		"20240704.333-r1.end":        "10:00",
		"20240704.333-r1.groups":     "2",
		"20240704.333-r1.1.colour":   "red",
		"20240704.333-r1.1.x.active": "on",
	}

	edits, err := ParseEdits(fields)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Empty(t, edits[0].Rooms)
}

func TestParseEdits_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{
			name: "missing end",
			fields: map[string]string{
				"20240704.333-r1.start":  "09:00",
				"20240704.333-r1.groups": "2",
			},
		},
		{
			name: "missing groups",
			fields: map[string]string{
				"20240704.333-r1.start": "09:00",
				"20240704.333-r1.end":   "10:00",
			},
		},
		{
			name: "groups not a number",
			fields: map[string]string{
				"20240704.333-r1.start":  "09:00",
				"20240704.333-r1.end":    "10:00",
				"20240704.333-r1.groups": "three",
			},
		},
		{
			name: "negative groups",
			fields: map[string]string{
				"20240704.333-r1.start":  "09:00",
				"20240704.333-r1.end":    "10:00",
				"20240704.333-r1.groups": "-1",
			},
		},
		{
			name: "malformed activity code",
			fields: map[string]string{
				"20240704.333-rx.start":  "09:00",
				"20240704.333-rx.end":    "10:00",
				"20240704.333-rx.groups": "1",
			},
		},
		{
			name: "invalid room id",
			fields: map[string]string{
				"20240704.333-r1.start":       "09:00",
				"20240704.333-r1.end":         "10:00",
				"20240704.333-r1.groups":      "1",
				"20240704.333-r1.main.active": "on",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEdits(tt.fields)
			assert.Error(t, err)
		})
	}
}
