package command

import (
	"testing"

	"github.com/kankrittapon/calendar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntries_CommaMode(t *testing.T) {
	entries := ParseEntries("ประชุม,2025-01-15,14:00,ห้องประชุม", testNow)

	require.Len(t, entries, 1)
	e := entries[0]
	require.NoError(t, e.Err)
	assert.Equal(t, "ประชุม", e.Title)
	assert.Equal(t, "2025-01-15", e.Date)
	assert.Equal(t, "14:00", e.StartTime)
	assert.Equal(t, "ห้องประชุม", e.Location)
	assert.Equal(t, domain.DefaultCategoryID, e.CategoryID)
}

func TestParseEntries_WhitespaceMode(t *testing.T) {
	entries := ParseEntries("ประชุม 15 14:00 ห้องประชุม", testNow)

	require.Len(t, entries, 1)
	e := entries[0]
	require.NoError(t, e.Err)
	assert.Equal(t, "ประชุม", e.Title)
	assert.Equal(t, "2025-01-15", e.Date)
	assert.Equal(t, "14:00", e.StartTime)
	assert.Equal(t, "ห้องประชุม", e.Location)
}

func TestParseEntries_Fields(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantTitle    string
		wantDate     string
		wantStart    string
		wantLocation string
		wantCategory string
		wantErr      error
	}{
		{
			name:         "multi word title",
			payload:      "ประชุม ทีม ขาย 20 9.30 ห้อง 301",
			wantTitle:    "ประชุม ทีม ขาย",
			wantDate:     "2025-01-20",
			wantStart:    "09:30",
			wantLocation: "ห้อง 301",
			wantCategory: domain.DefaultCategoryID,
		},
		{
			name:         "hash category in whitespace mode",
			payload:      "ประชุม 15 14:00 ห้องประชุม #big",
			wantTitle:    "ประชุม",
			wantDate:     "2025-01-15",
			wantStart:    "14:00",
			wantLocation: "ห้องประชุม",
			wantCategory: domain.CategoryBigID,
		},
		{
			name:         "bare category as fifth comma field",
			payload:      "ประชุม,2025-01-15,14:00,ห้องประชุม,งานนอก",
			wantTitle:    "ประชุม",
			wantDate:     "2025-01-15",
			wantStart:    "14:00",
			wantLocation: "ห้องประชุม",
			wantCategory: domain.CategoryExternalID,
		},
		{
			name:         "bare category word as fourth field stays location",
			payload:      "ประชุม 15 14:00 big",
			wantTitle:    "ประชุม",
			wantDate:     "2025-01-15",
			wantStart:    "14:00",
			wantLocation: "big",
			wantCategory: domain.DefaultCategoryID,
		},
		{
			name:         "hash category inside comma location",
			payload:      "ประชุม,15,14:00,ห้อง 1 #department",
			wantTitle:    "ประชุม",
			wantDate:     "2025-01-15",
			wantStart:    "14:00",
			wantLocation: "ห้อง 1",
			wantCategory: domain.CategoryDepartmentID,
		},
		{
			name:         "unknown hash token is kept",
			payload:      "ประชุม 15 14:00 #misc",
			wantTitle:    "ประชุม",
			wantDate:     "2025-01-15",
			wantStart:    "14:00",
			wantLocation: "#misc",
			wantCategory: domain.DefaultCategoryID,
		},
		{
			name:         "extra comma fields join the location",
			payload:      "ประชุม,15,14:00,อาคาร A,ชั้น 3,ห้อง 1",
			wantTitle:    "ประชุม",
			wantDate:     "2025-01-15",
			wantStart:    "14:00",
			wantLocation: "อาคาร A, ชั้น 3, ห้อง 1",
			wantCategory: domain.DefaultCategoryID,
		},
		{
			name:      "missing start time",
			payload:   "ประชุม 15",
			wantTitle: "ประชุม",
			wantErr:   ErrMissingFields,
		},
		{
			name:      "empty comma field",
			payload:   "ประชุม,,14:00",
			wantTitle: "ประชุม",
			wantErr:   ErrMissingFields,
		},
		{
			name:      "day beyond month",
			payload:   "ประชุม,32,14:00",
			wantTitle: "ประชุม",
			wantErr:   domain.ErrInvalidDate,
		},
		{
			name:      "invalid iso date",
			payload:   "ประชุม,2025-02-30,14:00",
			wantTitle: "ประชุม",
			wantErr:   domain.ErrInvalidDate,
		},
		{
			name:      "invalid time",
			payload:   "ประชุม,15,25:00",
			wantTitle: "ประชุม",
			wantDate:  "2025-01-15",
			wantErr:   domain.ErrInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ParseEntries(tt.payload, testNow)
			require.Len(t, entries, 1)
			e := entries[0]

			assert.Equal(t, tt.wantTitle, e.Title)
			if tt.wantErr != nil {
				assert.ErrorIs(t, e.Err, tt.wantErr)
				assert.Equal(t, tt.wantDate, e.Date)
				return
			}
			require.NoError(t, e.Err)
			assert.Equal(t, tt.wantDate, e.Date)
			assert.Equal(t, tt.wantStart, e.StartTime)
			assert.Equal(t, tt.wantLocation, e.Location)
			assert.Equal(t, tt.wantCategory, e.CategoryID)
		})
	}
}

func TestParseEntries_MultiEntryIndependence(t *testing.T) {
	cmd := ParseCommand("เพิ่มงาน ประชุม 15 14:00 ห้อง A | อบรม 16 | สัมมนา 17 09:00 ห้อง B", testNow)

	require.Equal(t, CmdAddSchedule, cmd.Type)
	require.Len(t, cmd.Entries, 3)

	assert.NoError(t, cmd.Entries[0].Err)
	assert.Equal(t, "ประชุม", cmd.Entries[0].Title)

	assert.ErrorIs(t, cmd.Entries[1].Err, ErrMissingFields)
	assert.Equal(t, "อบรม", cmd.Entries[1].Title)

	assert.NoError(t, cmd.Entries[2].Err)
	assert.Equal(t, "สัมมนา", cmd.Entries[2].Title)
	assert.Equal(t, "2025-01-17", cmd.Entries[2].Date)
}

func TestParseEntries_RepeatedTriggerAndBlanks(t *testing.T) {
	entries := ParseEntries("ประชุม 15 14:00 | | เพิ่มงาน อบรม 16 10:00", testNow)

	require.Len(t, entries, 2)
	assert.Equal(t, "ประชุม", entries[0].Title)
	assert.Equal(t, "อบรม", entries[1].Title)
	assert.NoError(t, entries[1].Err)
}

func TestParseCommand_BareAddTrigger(t *testing.T) {
	cmd := ParseCommand("เพิ่มงาน", testNow)
	assert.Equal(t, CmdAddSchedule, cmd.Type)
	assert.Empty(t, cmd.Entries)
}
