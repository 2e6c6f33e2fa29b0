package session

import (
	"context"
	"log"
	"time"

	"github.com/vetlinkbr/vetlink-telehealth/internal/audit"
	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/session"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	ucBooking "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/booking"
)

type EndSession struct {
	sessions        domain.Repository
	completeBooking *ucBooking.CompleteBooking
	audit           *audit.Dispatcher
}

func NewEndSession(
	sessions domain.Repository,
	completeBooking *ucBooking.CompleteBooking,
	audit *audit.Dispatcher,
) *EndSession {
	return &EndSession{
		sessions:        sessions,
		completeBooking: completeBooking,
		audit:           audit,
	}
}

// Execute encerra a sessão, fecha a consulta vinculada e notifica o
// agendamento para auto-completar. Falha de completion do agendamento
// (ex.: já cancelado) não desfaz o encerramento da sessão.
func (uc *EndSession) Execute(
	ctx context.Context,
	clinicID uint,
	sessionID uint,
	endedBy *uint,
) (*models.VideoSession, error) {

	s, err := uc.sessions.TransitionSession(
		ctx,
		sessionID,
		func(s *models.VideoSession) error {
			return domain.End(s, time.Now())
		},
	)
	if err != nil {
		return nil, err
	}

	consultation, err := uc.sessions.CompleteConsultation(ctx, s.ConsultationID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.completeBooking.Execute(ctx, clinicID, consultation.BookingID); err != nil {
		if !httperr.IsInvalidState(err) {
			return nil, err
		}
		// agendamento já saiu de confirmed por outro caminho
		log.Printf("booking %d not auto-completed: %v", consultation.BookingID, err)
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: clinicID,
		UserID:   endedBy,
		Action:   "session_ended",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{"duration_seconds": s.DurationSeconds},
	})

	return s, nil
}
