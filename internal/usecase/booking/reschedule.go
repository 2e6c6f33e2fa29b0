package booking

import (
	"context"
	"time"

	"github.com/vetlinkbr/vetlink-telehealth/internal/audit"
	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
	"github.com/vetlinkbr/vetlink-telehealth/internal/timezone"
)

type RescheduleBookingInput struct {
	ClinicID  uint
	BookingID uint

	NewDate      string
	NewSlotStart string
	NewSlotEnd   string
}

type RescheduleBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleBookingInput,
	actor domain.Actor,
) (*models.Booking, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.NewDate+" "+in.NewSlotStart,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	end, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.NewDate+" "+in.NewSlotEnd,
		loc,
	)
	if err != nil || !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	b, err := uc.repo.TransitionBooking(
		ctx,
		in.BookingID,
		in.ClinicID,
		actor,
		func(b *models.Booking) (domain.Details, error) {
			newStatus, err := domain.Reschedule(b, actor.Role, domain.NewSlot{
				Date:      in.NewDate,
				SlotStart: in.NewSlotStart,
				SlotEnd:   in.NewSlotEnd,
			})
			if err != nil {
				return nil, err
			}

			return domain.RescheduledDetails{
				NewDate:          in.NewDate,
				NewTimeSlotStart: in.NewSlotStart,
				NewTimeSlotEnd:   in.NewSlotEnd,
				NewStatus:        string(newStatus),
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   actor.UserID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"new_date":  in.NewDate,
			"new_start": in.NewSlotStart,
			"new_end":   in.NewSlotEnd,
		},
	})

	return b, nil
}
