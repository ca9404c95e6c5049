package scheduling

import (
	"context"
	"testing"
	"time"

	"medvault/models"
	"medvault/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-10 is a Monday.
const testMonday = "2025-03-10"

func seedRange(t *testing.T, svc *DefaultSchedulingService, doctorID, day, start, end string) *models.AvailabilityRange {
	t.Helper()
	rng, err := svc.AddAvailability(context.Background(), doctorID, models.CreateAvailabilityRequest{
		Day: day, StartTime: start, EndTime: end,
	})
	require.NoError(t, err)
	return rng
}

func TestGetDoctorAvailabilityWithoutDateReturnsRanges(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")
	seedRange(t, svc, "doc-1", "Tuesday", "14:00", "16:00")

	ranges, slots, err := svc.GetDoctorAvailability(context.Background(), "doc-1", "")
	require.NoError(t, err)
	assert.Nil(t, slots)
	require.Len(t, ranges, 2)
	assert.Equal(t, "Monday", ranges[0].Day)
	assert.Equal(t, "Tuesday", ranges[1].Day)
}

func TestGetDoctorAvailabilityExpandsSlots(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	rng := seedRange(t, svc, "doc-1", "Monday", "09:00", "11:00")
	seedRange(t, svc, "doc-1", "Tuesday", "14:00", "16:00")

	_, slots, err := svc.GetDoctorAvailability(context.Background(), "doc-1", testMonday)
	require.NoError(t, err)
	require.Len(t, slots, 4, "a 2-hour range yields four 30-minute slots; Tuesday is filtered out")

	wantStarts := []string{"09:00", "09:30", "10:00", "10:30"}
	wantEnds := []string{"09:30", "10:00", "10:30", "11:00"}
	for i, s := range slots {
		assert.Equal(t, wantStarts[i], s.StartTime)
		assert.Equal(t, wantEnds[i], s.EndTime)
		assert.Equal(t, rng.ID, s.AvailabilityID)
		assert.Equal(t, "doc-1", s.Doctor)
		assert.Equal(t, "Monday", s.Day)
		assert.Equal(t, testMonday, s.Date)
		assert.True(t, s.Available)
	}
}

func TestGetDoctorAvailabilityMarksOccupiedSlots(t *testing.T) {
	svc, _, appts, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "11:00")

	at := func(hh, mm int) time.Time {
		return time.Date(2025, 3, 10, hh, mm, 0, 0, time.Local)
	}
	require.NoError(t, appts.Create(ctx, &models.Appointment{
		ID: "a-1", Patient: "pat-1", Doctor: "doc-1",
		Date: at(9, 30), Status: models.AppointmentPending,
		SlotKey: slotKey("doc-1", at(9, 30)), Blocking: true,
	}))
	// Rejected appointments do not occupy their slot.
	require.NoError(t, appts.Create(ctx, &models.Appointment{
		ID: "a-2", Patient: "pat-1", Doctor: "doc-1",
		Date: at(10, 0), Status: models.AppointmentRejected,
		SlotKey: slotKey("doc-1", at(10, 0)), Blocking: false,
	}))

	_, slots, err := svc.GetDoctorAvailability(ctx, "doc-1", testMonday)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	byStart := make(map[string]bool, len(slots))
	for _, s := range slots {
		byStart[s.StartTime] = s.Available
	}
	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["09:30"], "pending appointment blocks its slot")
	assert.True(t, byStart["10:00"], "rejected appointment frees its slot")
	assert.True(t, byStart["10:30"])
}

func TestGetDoctorAvailabilityRejectsBadDate(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	_, _, err := svc.GetDoctorAvailability(context.Background(), "doc-1", "10-03-2025")
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, appCode(t, err))
}

func TestGetDoctorAvailabilityEmptyDayYieldsNoSlots(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()

	seedRange(t, svc, "doc-1", "Tuesday", "09:00", "11:00")

	_, slots, err := svc.GetDoctorAvailability(context.Background(), "doc-1", testMonday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBuildSlotsDeduplicatesOverlappingRanges(t *testing.T) {
	// Overlapping ranges cannot be created through the service; stored
	// overlaps still must not produce duplicate slots.
	target := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	ranges := []models.AvailabilityRange{
		{ID: "r-1", Doctor: "doc-1", Day: "Monday", StartTime: "09:00", EndTime: "10:30"},
		{ID: "r-2", Doctor: "doc-1", Day: "Monday", StartTime: "10:00", EndTime: "11:00"},
	}

	slots := buildSlots(ranges, target, testMonday, nil)
	require.Len(t, slots, 4)

	seen := make(map[string]string)
	for _, s := range slots {
		_, dup := seen[s.StartTime]
		require.False(t, dup, "duplicate slot at %s", s.StartTime)
		seen[s.StartTime] = s.AvailabilityID
	}
	assert.Equal(t, "r-1", seen["10:00"], "first range wins the shared slot")
	assert.Equal(t, "r-2", seen["10:30"])
}

func TestBuildSlotsSkipsMalformedRanges(t *testing.T) {
	target := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	ranges := []models.AvailabilityRange{
		{ID: "r-bad", Doctor: "doc-1", Day: "Monday", StartTime: "nine", EndTime: "11:00"},
		{ID: "r-ok", Doctor: "doc-1", Day: "Monday", StartTime: "09:00", EndTime: "09:30"},
	}

	slots := buildSlots(ranges, target, testMonday, nil)
	require.Len(t, slots, 1)
	assert.Equal(t, "r-ok", slots[0].AvailabilityID)
}
