package booking

import (
	"context"
	"time"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	"github.com/vetlinkbr/vetlink-telehealth/internal/timezone"
)

type MarkMissedBookings struct {
	repo domain.Repository
}

func NewMarkMissedBookings(repo domain.Repository) *MarkMissedBookings {
	return &MarkMissedBookings{repo: repo}
}

// Execute varre os agendamentos confirmados cujo slot já terminou sem
// nenhuma sessão ter ficado ativa e os marca como missed. Transição de
// sistema: sem entrada na trilha de ações e sem ator humano.
func (uc *MarkMissedBookings) Execute(ctx context.Context) (int, error) {

	bs, err := uc.repo.ListConfirmedBookings(ctx)
	if err != nil {
		return 0, err
	}

	missed := 0

	for i := range bs {
		b := &bs[i]

		loc := timezone.Location(b.Clinic.Timezone)

		end, err := time.ParseInLocation(
			"2006-01-02 15:04",
			b.ScheduledDate+" "+b.TimeSlotEnd,
			loc,
		)
		if err != nil {
			// slot malformado não vira missed automaticamente
			continue
		}

		now := time.Now().In(loc)
		if !now.After(end) {
			continue
		}

		if b.ConsultationID != nil {
			live, err := uc.repo.ConsultationHadLiveSession(ctx, *b.ConsultationID)
			if err != nil {
				continue
			}
			if live {
				continue
			}
		}

		_, err = uc.repo.TransitionBooking(
			ctx,
			b.ID,
			b.ClinicID,
			domain.Actor{Role: "system"},
			func(b *models.Booking) (domain.Details, error) {
				return nil, domain.MarkMissed(b, now)
			},
		)
		if err != nil {
			// perdedor de corrida ou estado já mudou: segue a varredura
			continue
		}

		missed++
	}

	return missed, nil
}
