package booking

import (
	"context"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	"github.com/vetlinkbr/vetlink-telehealth/internal/timezone"
)

type CompleteBooking struct {
	repo domain.Repository
}

func NewCompleteBooking(repo domain.Repository) *CompleteBooking {
	return &CompleteBooking{repo: repo}
}

// Execute é disparado pelo encerramento da sessão, quando a consulta
// vinculada fecha. Exige status confirmed.
func (uc *CompleteBooking) Execute(
	ctx context.Context,
	clinicID uint,
	bookingID uint,
) (*models.Booking, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)

	return uc.repo.TransitionBooking(
		ctx,
		bookingID,
		clinicID,
		domain.Actor{Role: "system"},
		func(b *models.Booking) (domain.Details, error) {
			return nil, domain.Complete(b, now)
		},
	)
}
