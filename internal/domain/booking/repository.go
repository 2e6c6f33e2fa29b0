package booking

import (
	"context"

	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

// Actor identifica quem disparou a transição, para a trilha de ações.
type Actor struct {
	UserID *uint
	Role   string
}

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Pet --------
	GetPetForOwner(
		ctx context.Context,
		clinicID uint,
		ownerID uint,
		petID uint,
	) (*models.Pet, error)

	// -------- Booking (create) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
		actor Actor,
		details Details,
	) error

	// -------- Booking (read) --------
	GetBookingForClinic(
		ctx context.Context,
		bookingID uint,
		clinicID uint,
	) (*models.Booking, error)

	ListBookingsForDate(
		ctx context.Context,
		clinicID uint,
		userID uint,
		role string,
		date string,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	// TransitionBooking aplica a mutação sob lock de linha: dois
	// chamadores concorrentes nunca observam o mesmo estado anterior.
	// Se apply devolver Details não-nulo, a entrada da trilha é gravada
	// na mesma transação.
	TransitionBooking(
		ctx context.Context,
		bookingID uint,
		clinicID uint,
		actor Actor,
		apply func(b *models.Booking) (Details, error),
	) (*models.Booking, error)

	// -------- Missed sweep --------
	ListConfirmedBookings(
		ctx context.Context,
	) ([]models.Booking, error)

	// ConsultationHadLiveSession responde se alguma sessão da consulta
	// chegou a ficar ativa (started_at preenchido).
	ConsultationHadLiveSession(
		ctx context.Context,
		consultationID uint,
	) (bool, error)

	// -------- Action log --------
	ListActionLog(
		ctx context.Context,
		bookingID uint,
	) ([]models.BookingActionLog, error)
}
