package booking

import (
	"time"

	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func MarkMissed(b *models.Booking, now time.Time) error {
	if err := CanMarkMissed(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusMissed)
	b.MissedAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// NewSlot é o horário alvo de uma remarcação.
type NewSlot struct {
	Date      string
	SlotStart string
	SlotEnd   string
}

// Reschedule aplica a política de remarcação: veterinário remarcando
// já confirma o novo horário; tutor remarcando volta para pending e
// exige re-confirmação do veterinário.
func Reschedule(b *models.Booking, actorRole string, slot NewSlot) (Status, error) {
	if err := CanReschedule(Status(b.Status)); err != nil {
		return "", err
	}

	b.ScheduledDate = slot.Date
	b.TimeSlotStart = slot.SlotStart
	b.TimeSlotEnd = slot.SlotEnd
	b.MissedAt = nil

	newStatus := StatusPending
	if actorRole == models.RoleVeterinarian {
		newStatus = StatusConfirmed
	}

	b.Status = string(newStatus)
	return newStatus, nil
}
