package booking

import (
	"context"

	"github.com/vetlinkbr/vetlink-telehealth/internal/audit"
	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	"github.com/vetlinkbr/vetlink-telehealth/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

// Cancelar um agendamento já cancelado devolve invalid_state, nunca
// sucesso silencioso. O registro é arquivado, não apagado.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	clinicID uint,
	bookingID uint,
	actor domain.Actor,
	reason string,
) (*models.Booking, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)

	b, err := uc.repo.TransitionBooking(
		ctx,
		bookingID,
		clinicID,
		actor,
		func(b *models.Booking) (domain.Details, error) {
			if err := domain.Cancel(b, now); err != nil {
				return nil, err
			}
			return domain.CancelledDetails{Reason: reason}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   actor.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": reason},
	})

	return b, nil
}
