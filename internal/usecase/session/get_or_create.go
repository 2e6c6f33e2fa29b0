package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/vetlinkbr/vetlink-telehealth/internal/audit"
	bookdomain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/session"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type GetOrCreateSession struct {
	sessions domain.Repository
	bookings bookdomain.Repository
	audit    *audit.Dispatcher
}

func NewGetOrCreateSession(
	sessions domain.Repository,
	bookings bookdomain.Repository,
	audit *audit.Dispatcher,
) *GetOrCreateSession {
	return &GetOrCreateSession{
		sessions: sessions,
		bookings: bookings,
		audit:    audit,
	}
}

// Execute materializa a consulta do agendamento (1:1) e devolve a
// sessão não-encerrada dela. Chamar de novo com a sessão viva devolve
// a mesma sessão, intacta.
func (uc *GetOrCreateSession) Execute(
	ctx context.Context,
	clinicID uint,
	bookingID uint,
	requesterID uint,
) (*models.VideoSession, *models.Consultation, error) {

	b, err := uc.bookings.GetBookingForClinic(ctx, bookingID, clinicID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.Status != string(bookdomain.StatusConfirmed) {
		return nil, nil, httperr.ErrBusiness("booking_not_confirmed")
	}

	consultation, err := uc.sessions.GetOrCreateConsultation(ctx, clinicID, bookingID)
	if err != nil {
		return nil, nil, err
	}

	candidate := &models.VideoSession{
		ConsultationID:    consultation.ID,
		HostUserID:        b.VeterinarianID,
		ParticipantUserID: b.OwnerID,
		RoomID:            uuid.NewString(),
		Status:            string(domain.InitialStatus()),
	}

	s, created, err := uc.sessions.GetOrCreateSession(ctx, candidate)
	if err != nil {
		return nil, nil, err
	}

	if created {
		uc.audit.Dispatch(audit.Event{
			ClinicID: clinicID,
			UserID:   &requesterID,
			Action:   "session_created",
			Entity:   "session",
			EntityID: &s.ID,
		})
	}

	return s, consultation, nil
}
