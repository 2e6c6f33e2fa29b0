package booking

import (
	"context"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/domain/joinwindow"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/timezone"
)

// SettingsProvider entrega a janela de entrada configurada da clínica.
type SettingsProvider interface {
	JoinWindowMinutes(ctx context.Context, clinicID uint) int
}

type JoinableResult struct {
	Joinable          bool   `json:"joinable"`
	Status            string `json:"status"`
	JoinWindowMinutes int    `json:"join_window_minutes"`
}

type CheckJoinable struct {
	repo     domain.Repository
	settings SettingsProvider
}

func NewCheckJoinable(
	repo domain.Repository,
	settings SettingsProvider,
) *CheckJoinable {
	return &CheckJoinable{
		repo:     repo,
		settings: settings,
	}
}

// Execute avalia a janela do lado do servidor. Só agendamento
// confirmado tem botão de entrar; a aritmética em si é a do
// joinwindow, data crua no timezone da clínica.
func (uc *CheckJoinable) Execute(
	ctx context.Context,
	clinicID uint,
	bookingID uint,
) (*JoinableResult, error) {

	b, err := uc.repo.GetBookingForClinic(ctx, bookingID, clinicID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	clinic, err := uc.repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	window := uc.settings.JoinWindowMinutes(ctx, clinicID)

	result := &JoinableResult{
		Status:            b.Status,
		JoinWindowMinutes: window,
	}

	if b.Status != string(domain.StatusConfirmed) {
		return result, nil
	}

	loc := timezone.Location(clinic.Timezone)
	now := timezone.NowIn(clinic.Timezone)

	result.Joinable = joinwindow.IsJoinable(
		b.ScheduledDate,
		b.TimeSlotStart,
		b.TimeSlotEnd,
		window,
		now,
		loc,
	)

	return result, nil
}
