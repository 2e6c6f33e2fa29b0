package booking

import (
	"context"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/dto"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	clinicID uint,
	userID uint,
	role string,
	date string,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookingsForDate(
		ctx,
		clinicID,
		userID,
		role,
		date,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			ScheduledDate: b.ScheduledDate,
			TimeSlotStart: b.TimeSlotStart,
			TimeSlotEnd:   b.TimeSlotEnd,
			Status:        b.Status,
			BookingType:   b.BookingType,
			Priority:      b.Priority,
			PetName:       b.Pet.Name,
			OwnerName:     b.Owner.Name,
			VetName:       b.Veterinarian.Name,
		})
	}

	return out, nil
}
