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

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClinicID uint
	OwnerID  uint

	VeterinarianID uint
	PetID          uint

	Date      string
	SlotStart string
	SlotEnd   string

	BookingType    string
	Priority       string
	ReasonForVisit string
}

var validBookingTypes = map[string]bool{
	"video_call": true,
	"phone":      true,
	"in_person":  true,
	"chat":       true,
}

var validPriorities = map[string]bool{
	"low":       true,
	"normal":    true,
	"high":      true,
	"urgent":    true,
	"emergency": true,
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.SlotStart,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	end, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.SlotEnd,
		loc,
	)
	if err != nil || !end.After(start) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(clinic.Timezone)
	if start.Before(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	if in.BookingType == "" {
		in.BookingType = "video_call"
	}
	if !validBookingTypes[in.BookingType] {
		return nil, httperr.ErrBusiness("invalid_booking_type")
	}

	if in.Priority == "" {
		in.Priority = "normal"
	}
	if !validPriorities[in.Priority] {
		return nil, httperr.ErrBusiness("invalid_priority")
	}

	if _, err := uc.repo.GetPetForOwner(ctx, in.ClinicID, in.OwnerID, in.PetID); err != nil {
		return nil, httperr.ErrBusiness("pet_not_found")
	}

	b := &models.Booking{
		ClinicID:       in.ClinicID,
		OwnerID:        in.OwnerID,
		VeterinarianID: in.VeterinarianID,
		PetID:          in.PetID,
		ScheduledDate:  in.Date,
		TimeSlotStart:  in.SlotStart,
		TimeSlotEnd:    in.SlotEnd,
		BookingType:    in.BookingType,
		Priority:       in.Priority,
		ReasonForVisit: in.ReasonForVisit,
		Status:         string(domain.InitialStatus()),
	}

	actor := domain.Actor{UserID: &in.OwnerID, Role: models.RoleOwner}

	if err := uc.repo.CreateBooking(ctx, b, actor, domain.CreatedDetails{
		BookingType: in.BookingType,
		Priority:    in.Priority,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.OwnerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
