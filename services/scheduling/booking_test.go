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

func TestBookAppointment(t *testing.T) {
	svc, _, appts, _, _, sink := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	booked, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		Date:     testMonday + "T09:30",
		Reason:   "Annual checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, booked.Status)
	assert.Equal(t, "pat-1", booked.Patient.ID)
	assert.Equal(t, "Brian", booked.Patient.FirstName)
	assert.Equal(t, "doc-1", booked.Doctor.ID)
	assert.Equal(t, "Cardiology", booked.Doctor.Specialization)
	assert.False(t, booked.HasFeedback)

	stored, err := appts.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.True(t, stored.Blocking)
	assert.Equal(t, slotKey("doc-1", stored.Date), stored.SlotKey)
	assert.Equal(t, 9, stored.Date.Hour())
	assert.Equal(t, 30, stored.Date.Minute())

	n, ok := sink.last()
	require.True(t, ok, "doctor should be notified")
	assert.Equal(t, "doc-1", n.UserID)
	assert.Equal(t, models.NotificationAppointment, n.Type)
	assert.Equal(t, booked.ID, n.RelatedEntityID)
}

func TestBookAppointmentValidation(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	cases := []struct {
		name string
		req  models.BookAppointmentRequest
		code string
	}{
		{
			name: "missing fields",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: testMonday + "T09:30"},
			code: utils.CodeInvalidInput,
		},
		{
			name: "unknown doctor",
			req:  models.BookAppointmentRequest{DoctorID: "ghost", Date: testMonday + "T09:30", Reason: "x"},
			code: utils.CodeNotFound,
		},
		{
			name: "patient as doctor",
			req:  models.BookAppointmentRequest{DoctorID: "pat-1", Date: testMonday + "T09:30", Reason: "x"},
			code: utils.CodeNotFound,
		},
		{
			name: "unparseable date",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: "next monday", Reason: "x"},
			code: utils.CodeInvalidInput,
		},
		{
			name: "in the past",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: "2025-02-24T09:30", Reason: "x"},
			code: utils.CodeInvalidInput,
		},
		{
			name: "outside availability",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: testMonday + "T14:00", Reason: "x"},
			code: utils.CodeInvalidInput,
		},
		{
			name: "wrong weekday",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: "2025-03-11T09:30", Reason: "x"},
			code: utils.CodeInvalidInput,
		},
		{
			name: "off the 30-minute grid",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: testMonday + "T09:15", Reason: "x"},
			code: utils.CodeInvalidInput,
		},
		{
			name: "slot would spill past the range end",
			req:  models.BookAppointmentRequest{DoctorID: "doc-1", Date: testMonday + "T12:00", Reason: "x"},
			code: utils.CodeInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookAppointment(ctx, "pat-1", tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, appCode(t, err))
		})
	}
}

func TestBookAppointmentAcceptedDateFormats(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	formats := []string{
		testMonday + "T09:00",
		testMonday + "T09:30:00",
		time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local).Format(time.RFC3339),
	}
	for _, date := range formats {
		_, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
			DoctorID: "doc-1", Date: date, Reason: "checkup",
		})
		assert.NoError(t, err, "format %q", date)
	}
}

func TestBookAppointmentConflicts(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	req := models.BookAppointmentRequest{DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "checkup"}
	first, err := svc.BookAppointment(ctx, "pat-1", req)
	require.NoError(t, err)

	// Same slot again is a conflict while the first booking blocks it.
	_, err = svc.BookAppointment(ctx, "pat-1", req)
	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, appCode(t, err))
	assert.EqualError(t, err, "Selected slot is already booked")

	// An adjacent slot stays bookable.
	_, err = svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T10:00", Reason: "checkup",
	})
	require.NoError(t, err)

	// Rejecting the first booking frees its slot for rebooking.
	_, err = svc.UpdateAppointmentStatus(ctx, first.ID, "doc-1", models.AppointmentRejected)
	require.NoError(t, err)
	_, err = svc.BookAppointment(ctx, "pat-1", req)
	assert.NoError(t, err)
}

func TestBookAppointmentLosingTheWriteRace(t *testing.T) {
	svc, _, appts, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	// Simulate a concurrent booking landing between the occupancy read and
	// the insert: pre-claim the slotKey directly in storage.
	when := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	require.NoError(t, appts.Create(ctx, &models.Appointment{
		ID: "rival", Patient: "pat-2", Doctor: "doc-1",
		Date: when, Status: models.AppointmentPending,
		SlotKey: slotKey("doc-1", when), Blocking: true,
	}))

	_, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "checkup",
	})
	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, appCode(t, err))
}

func TestSlotKeyNormalizesEquivalentInstants(t *testing.T) {
	local := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)

	assert.Equal(t, slotKey("doc-1", local), slotKey("doc-1", local.UTC()))
	assert.Equal(t, slotKey("doc-1", local), slotKey("doc-1", local.In(time.FixedZone("", 3*3600))))
}

func TestBookAppointmentOffsetDateMatchesLocalSlot(t *testing.T) {
	svc, _, appts, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	// The local 09:30 Monday slot, spelled in UTC. Availability is checked
	// in server-local time, so this must land in the 09:30 slot.
	slot := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	booked, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		Date:     slot.UTC().Format(time.RFC3339),
		Reason:   "Annual checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, booked.Date.Hour())
	assert.Equal(t, 30, booked.Date.Minute())

	stored, err := appts.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, slotKey("doc-1", slot), stored.SlotKey)

	// The local spelling of the same instant is a conflict.
	_, err = svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "follow-up",
	})
	assert.Equal(t, utils.CodeConflict, appCode(t, err))

	// So is any other fixed-offset rendering of it.
	_, err = svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		Date:     slot.In(time.FixedZone("", -5*3600)).Format(time.RFC3339),
		Reason:   "follow-up",
	})
	assert.Equal(t, utils.CodeConflict, appCode(t, err))
}

func TestReapprovingRejectedAppointmentAfterSlotRebooked(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")

	first, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "checkup",
	})
	require.NoError(t, err)
	_, err = svc.UpdateAppointmentStatus(ctx, first.ID, "doc-1", models.AppointmentRejected)
	require.NoError(t, err)

	// The freed slot is claimed by a new booking.
	_, err = svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "follow-up",
	})
	require.NoError(t, err)

	// Approving the rejected booking would double-claim the slot.
	_, err = svc.UpdateAppointmentStatus(ctx, first.ID, "doc-1", models.AppointmentApproved)
	require.Error(t, err)
	assert.Equal(t, utils.CodeConflict, appCode(t, err))
}

func TestUpdateAppointmentStatus(t *testing.T) {
	svc, _, appts, _, _, sink := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")
	booked, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "checkup",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAppointmentStatus(ctx, booked.ID, "doc-1", "postponed")
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, appCode(t, err))

	_, err = svc.UpdateAppointmentStatus(ctx, booked.ID, "doc-2", models.AppointmentApproved)
	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, appCode(t, err))

	_, err = svc.UpdateAppointmentStatus(ctx, "missing", "doc-1", models.AppointmentApproved)
	require.Error(t, err)
	assert.Equal(t, utils.CodeNotFound, appCode(t, err))

	updated, err := svc.UpdateAppointmentStatus(ctx, booked.ID, "doc-1", models.AppointmentApproved)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentApproved, updated.Status)

	stored, err := appts.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.True(t, stored.Blocking, "approved keeps the slot blocked")

	n, ok := sink.last()
	require.True(t, ok)
	assert.Equal(t, "pat-1", n.UserID, "patient is notified of the decision")

	_, err = svc.UpdateAppointmentStatus(ctx, booked.ID, "doc-1", models.AppointmentRejected)
	require.NoError(t, err)
	stored, err = appts.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.False(t, stored.Blocking, "rejected releases the slot")
}

func TestCancelAppointment(t *testing.T) {
	svc, _, appts, _, _, sink := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")
	booked, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "checkup",
	})
	require.NoError(t, err)

	_, err = svc.CancelAppointment(ctx, booked.ID, "pat-2")
	require.Error(t, err)
	assert.Equal(t, utils.CodeForbidden, appCode(t, err))

	cancelled, err := svc.CancelAppointment(ctx, booked.ID, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	stored, err := appts.GetByID(ctx, booked.ID)
	require.NoError(t, err)
	assert.False(t, stored.Blocking, "cancelled releases the slot")

	n, ok := sink.last()
	require.True(t, ok)
	assert.Equal(t, "doc-1", n.UserID, "doctor is notified of the cancellation")

	// Cancelled is terminal.
	_, err = svc.CancelAppointment(ctx, booked.ID, "pat-1")
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, appCode(t, err))
}

func TestCancelCompletedAppointmentRejected(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")
	booked, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1", Date: testMonday + "T09:30", Reason: "checkup",
	})
	require.NoError(t, err)

	_, err = svc.UpdateAppointmentStatus(ctx, booked.ID, "doc-1", models.AppointmentCompleted)
	require.NoError(t, err)

	_, err = svc.CancelAppointment(ctx, booked.ID, "pat-1")
	require.Error(t, err)
	assert.Equal(t, utils.CodeInvalidInput, appCode(t, err))
}

func TestMyAppointments(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	seedRange(t, svc, "doc-1", "Monday", "09:00", "12:00")
	for _, at := range []string{"T09:00", "T09:30", "T10:00"} {
		_, err := svc.BookAppointment(ctx, "pat-1", models.BookAppointmentRequest{
			DoctorID: "doc-1", Date: testMonday + at, Reason: "checkup",
		})
		require.NoError(t, err)
	}

	mine, err := svc.MyAppointments(ctx, "pat-1", models.RolePatient)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	for _, a := range mine {
		assert.Equal(t, "pat-1", a.Patient.ID)
		assert.Equal(t, "Grace", a.Doctor.FirstName)
	}

	hosted, err := svc.MyAppointments(ctx, "doc-1", models.RoleProfessional)
	require.NoError(t, err)
	assert.Len(t, hosted, 3)

	none, err := svc.MyAppointments(ctx, "pat-2", models.RolePatient)
	require.NoError(t, err)
	assert.Empty(t, none)
}
