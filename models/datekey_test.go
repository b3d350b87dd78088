package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyRoundTrip(t *testing.T) {
	day := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)
	key := NewDateKey(day)
	assert.Equal(t, DateKey("26_8_2026"), key)

	back, err := key.Time(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), back)
}

func TestDateKeyNoZeroPadding(t *testing.T) {
	key := NewDateKey(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, DateKey("5_1_2026"), key)
}

func TestDateKeyValidation(t *testing.T) {
	assert.True(t, DateKey("26_8_2026").Valid())
	assert.True(t, DateKey("1_12_2026").Valid())

	for _, bad := range []DateKey{"", "26-8-2026", "26_8", "a_b_c", "40_8_2026", "26_13_2026"} {
		assert.False(t, bad.Valid(), "expected %q to be invalid", bad)
	}
}

func TestTimeLabelFormatting(t *testing.T) {
	assert.Equal(t, TimeLabel("09:00 AM"), MinutesToLabel(9*60))
	assert.Equal(t, TimeLabel("09:30 AM"), MinutesToLabel(9*60+30))
	assert.Equal(t, TimeLabel("12:00 PM"), MinutesToLabel(12*60))
	assert.Equal(t, TimeLabel("12:00 AM"), MinutesToLabel(0))
	assert.Equal(t, TimeLabel("11:30 PM"), MinutesToLabel(23*60+30))
}

func TestTimeLabelMinutes(t *testing.T) {
	for _, tc := range []struct {
		label TimeLabel
		want  int
	}{
		{"09:00 AM", 540},
		{"12:00 PM", 720},
		{"12:00 AM", 0},
		{"04:45 PM", 16*60 + 45},
	} {
		got, err := tc.label.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := TimeLabel("25:00").Minutes()
	assert.Error(t, err)
}

func TestTimeLabelInstant(t *testing.T) {
	instant, err := TimeLabel("09:30 AM").Instant(DateKey("31_8_2026"), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC), instant)

	_, err = TimeLabel("09:30 AM").Instant(DateKey("bogus"), time.UTC)
	assert.Error(t, err)
}

func TestDoctorSlotBooked(t *testing.T) {
	d := &Doctor{BookedSlots: map[string][]string{
		"31_8_2026": {"09:30 AM"},
	}}
	assert.True(t, d.SlotBooked("31_8_2026", "09:30 AM"))
	assert.False(t, d.SlotBooked("31_8_2026", "10:00 AM"))
	assert.False(t, d.SlotBooked("1_9_2026", "09:30 AM"))
}
