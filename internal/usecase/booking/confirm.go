package booking

import (
	"context"

	"github.com/vetlinkbr/vetlink-telehealth/internal/audit"
	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type ConfirmBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	clinicID uint,
	bookingID uint,
	actor domain.Actor,
) (*models.Booking, error) {

	b, err := uc.repo.TransitionBooking(
		ctx,
		bookingID,
		clinicID,
		actor,
		func(b *models.Booking) (domain.Details, error) {
			if err := domain.Confirm(b); err != nil {
				return nil, err
			}
			return domain.ConfirmedDetails{}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   actor.UserID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
