package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

func newBooking(status Status) *models.Booking {
	return &models.Booking{
		ScheduledDate: "2026-09-10",
		TimeSlotStart: "14:00",
		TimeSlotEnd:   "14:30",
		Status:        string(status),
	}
}

func TestConfirm(t *testing.T) {
	b := newBooking(StatusPending)

	require.NoError(t, Confirm(b))
	assert.Equal(t, string(StatusConfirmed), b.Status)

	// segundo confirm não é idempotente: estado já mudou
	err := Confirm(b)
	require.Error(t, err)
	assert.True(t, httperr.IsInvalidState(err))
}

func TestCancelStampsTimestamp(t *testing.T) {
	b := newBooking(StatusConfirmed)
	now := time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC)

	require.NoError(t, Cancel(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)

	// cancelar de novo falha, nunca sucesso silencioso
	err := Cancel(b, now.Add(time.Minute))
	require.Error(t, err)
	assert.Equal(t, now, *b.CancelledAt)
}

func TestMarkMissedOnlyFromConfirmed(t *testing.T) {
	now := time.Now()

	b := newBooking(StatusConfirmed)
	require.NoError(t, MarkMissed(b, now))
	assert.Equal(t, string(StatusMissed), b.Status)
	require.NotNil(t, b.MissedAt)

	pending := newBooking(StatusPending)
	assert.Error(t, MarkMissed(pending, now))
}

func TestReschedule_OwnerGoesBackToPending(t *testing.T) {
	now := time.Now()
	b := newBooking(StatusConfirmed)
	require.NoError(t, MarkMissed(b, now))

	slot := NewSlot{Date: "2026-09-12", SlotStart: "09:00", SlotEnd: "09:30"}

	newStatus, err := Reschedule(b, models.RoleOwner, slot)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, newStatus)
	assert.Equal(t, string(StatusPending), b.Status)
	assert.Equal(t, "2026-09-12", b.ScheduledDate)
	assert.Equal(t, "09:00", b.TimeSlotStart)
	assert.Equal(t, "09:30", b.TimeSlotEnd)
	assert.Nil(t, b.MissedAt, "remarcação limpa o carimbo de falta")
}

func TestReschedule_VetConfirmsDirectly(t *testing.T) {
	b := newBooking(StatusMissed)

	newStatus, err := Reschedule(b, models.RoleVeterinarian, NewSlot{
		Date: "2026-09-12", SlotStart: "10:00", SlotEnd: "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, newStatus)
	assert.Equal(t, string(StatusConfirmed), b.Status)
}

func TestReschedule_RejectedFromTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusPending} {
		b := newBooking(s)
		_, err := Reschedule(b, models.RoleOwner, NewSlot{
			Date: "2026-09-12", SlotStart: "10:00", SlotEnd: "10:30",
		})
		require.Error(t, err, "de %s", s)
		assert.Equal(t, string(s), b.Status, "booking não pode ser tocado em falha")
	}
}

func TestCompleteStampsTimestamp(t *testing.T) {
	b := newBooking(StatusConfirmed)
	now := time.Now()

	require.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
}

func TestEncodeDetails(t *testing.T) {
	raw := EncodeDetails(RescheduledDetails{
		NewDate:          "2026-09-12",
		NewTimeSlotStart: "09:00",
		NewTimeSlotEnd:   "09:30",
		NewStatus:        string(StatusPending),
	})
	assert.Contains(t, raw, `"new_date":"2026-09-12"`)
	assert.Equal(t, "", EncodeDetails(nil))
}
