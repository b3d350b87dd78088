package scheduling

import (
	"context"
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2026-08-26 08:00 local.
var testNow = time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC)

func labels(slots []models.AvailableSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s.Time)
	}
	return out
}

func mondayDoctor() *models.Doctor {
	return &models.Doctor{
		ID:           "doc-1",
		Name:         "Dr. Achieng",
		Fee:          500,
		Available:    true,
		Availability: weekTemplate(9*60, 11*60, time.Monday),
		SlotMinutes:  30,
		BookedSlots:  map[string][]string{},
	}
}

func TestBuildDaySlotsMondayWindow(t *testing.T) {
	window := BuildDaySlots(mondayDoctor(), testNow, 7)
	require.Len(t, window, 7)

	// 2026-08-31 is the upcoming Monday, at offset 5.
	monday := window[5]
	assert.Equal(t, "Monday", monday.Weekday)
	assert.Equal(t, models.DateKey("31_8_2026"), monday.Date)
	assert.Equal(t, []string{"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM"}, labels(monday.Slots))

	// Every other day is disabled and contributes an empty list.
	for i, day := range window {
		if i == 5 {
			continue
		}
		assert.Empty(t, day.Slots, "day %d should have no openings", i)
	}
}

func TestBuildDaySlotsExcludesBooked(t *testing.T) {
	doc := mondayDoctor()
	doc.BookedSlots["31_8_2026"] = []string{"09:30 AM"}

	window := BuildDaySlots(doc, testNow, 7)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM", "10:30 AM"}, labels(window[5].Slots))
}

func TestBuildDaySlotsTodayRoundsUpToGrid(t *testing.T) {
	doc := mondayDoctor()
	doc.Availability = weekTemplate(9*60, 12*60, time.Wednesday)

	// 10:15 on Wednesday: the next boundary on the 9:00-anchored 30-minute
	// grid is 10:30.
	now := time.Date(2026, 8, 26, 10, 15, 0, 0, time.UTC)
	window := BuildDaySlots(doc, now, 7)
	today := window[0]
	assert.Equal(t, []string{"10:30 AM", "11:00 AM", "11:30 AM"}, labels(today.Slots))

	for _, s := range today.Slots {
		instant, err := s.Time.Instant(today.Date, time.UTC)
		require.NoError(t, err)
		assert.False(t, instant.Before(now), "slot %s is in the past", s.Time)
	}
}

func TestBuildDaySlotsTodayOnBoundaryIsStrictlyAfter(t *testing.T) {
	doc := mondayDoctor()
	doc.Availability = weekTemplate(9*60, 12*60, time.Wednesday)

	now := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)
	window := BuildDaySlots(doc, now, 7)
	assert.Equal(t, []string{"11:00 AM", "11:30 AM"}, labels(window[0].Slots))
}

func TestBuildDaySlotsBeforeWorkingHoursStartsAtTemplate(t *testing.T) {
	doc := mondayDoctor()
	doc.Availability = weekTemplate(9*60, 10*60, time.Wednesday)

	now := time.Date(2026, 8, 26, 6, 45, 0, 0, time.UTC)
	window := BuildDaySlots(doc, now, 7)
	assert.Equal(t, []string{"09:00 AM", "09:30 AM"}, labels(window[0].Slots))
}

func TestBuildDaySlotsDropsPartialTrailingSlot(t *testing.T) {
	doc := mondayDoctor()
	// 09:00-10:45 with 30-minute slots: the 10:30 slot would overrun.
	doc.Availability = weekTemplate(9*60, 10*60+45, time.Monday)

	window := BuildDaySlots(doc, testNow, 7)
	assert.Equal(t, []string{"09:00 AM", "09:30 AM", "10:00 AM"}, labels(window[5].Slots))
}

func TestBuildDaySlotsHonoursBreakMinutes(t *testing.T) {
	doc := mondayDoctor()
	doc.BreakMinutes = 15

	window := BuildDaySlots(doc, testNow, 7)
	// 30-minute consultations with a 15-minute gap: 09:00, 09:45, 10:30.
	assert.Equal(t, []string{"09:00 AM", "09:45 AM", "10:30 AM"}, labels(window[5].Slots))
}

func TestBuildDaySlotsAllDaysDisabled(t *testing.T) {
	doc := mondayDoctor()
	doc.Availability = weekTemplate(9*60, 17*60)

	window := BuildDaySlots(doc, testNow, 7)
	require.Len(t, window, 7)
	for _, day := range window {
		assert.NotNil(t, day.Slots)
		assert.Empty(t, day.Slots)
	}
}

func TestGetAvailableSlotsUnknownDoctor(t *testing.T) {
	svc := newTestService(newFakeStore(), testNow)
	_, err := svc.GetAvailableSlots(context.Background(), "missing")
	assert.True(t, IsCode(err, CodeDoctorNotFound))
}

func TestGetAvailableSlotsUnavailableDoctorHidesAll(t *testing.T) {
	store := newFakeStore()
	doc := mondayDoctor()
	doc.Available = false
	store.addDoctor(doc)

	svc := newTestService(store, testNow)
	window, err := svc.GetAvailableSlots(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, window, 7)
	for _, day := range window {
		assert.Empty(t, day.Slots)
	}
}
