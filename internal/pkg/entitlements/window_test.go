package entitlements

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name      string
		ref       time.Time
		loc       *time.Location
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month utc",
			ref:       time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
			loc:       time.UTC,
			wantStart: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls into next year",
			ref:       time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC),
			loc:       nil,
			wantStart: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// 20:00 UTC on Oct 31 is already Nov 1 in India.
			name:      "store time zone decides the month",
			ref:       time.Date(2026, 10, 31, 20, 0, 0, 0, time.UTC),
			loc:       kolkata,
			wantStart: time.Date(2026, 11, 1, 0, 0, 0, 0, kolkata),
			wantEnd:   time.Date(2026, 12, 1, 0, 0, 0, 0, kolkata),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := MonthWindow(tt.ref, tt.loc)
			assert.True(t, tt.wantStart.Equal(w.Start), "start %s, want %s", w.Start, tt.wantStart)
			assert.True(t, tt.wantEnd.Equal(w.End), "end %s, want %s", w.End, tt.wantEnd)
			assert.True(t, w.Contains(tt.ref))
		})
	}
}

func TestMonthWindowIsHalfOpen(t *testing.T) {
	w := MonthWindow(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}

func TestLoadLocationFallback(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("", nil))
	assert.Equal(t, time.UTC, LoadLocation("Mars/Olympus_Mons", nil))

	fallback := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, fallback, LoadLocation("not-a-zone", fallback))
	assert.Equal(t, "Europe/Berlin", LoadLocation("Europe/Berlin", fallback).String())
}
