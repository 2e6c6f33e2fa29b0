package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *BookingGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Pet
// --------------------------------------------------

func (r *BookingGormRepository) GetPetForOwner(
	ctx context.Context,
	clinicID uint,
	ownerID uint,
	petID uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ? AND owner_id = ?", petID, clinicID, ownerID).
		First(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	actor domain.Actor,
	details domain.Details,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		return appendActionLog(tx, b.ID, actor, details)
	})
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForClinic(
	ctx context.Context,
	bookingID uint,
	clinicID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", bookingID, clinicID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	clinicID uint,
	userID uint,
	role string,
	date string,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Owner").
		Preload("Veterinarian").
		Where("clinic_id = ? AND scheduled_date = ?", clinicID, date)

	switch role {
	case models.RoleVeterinarian:
		q = q.Where("veterinarian_id = ?", userID)
	case models.RoleOwner:
		q = q.Where("owner_id = ?", userID)
	}

	var bs []models.Booking
	if err := q.
		Order("time_slot_start ASC").
		Find(&bs).Error; err != nil {
		return nil, err
	}

	return bs, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

// TransitionBooking carrega a linha com SELECT ... FOR UPDATE antes de
// aplicar a mutação: o perdedor de uma corrida enxerga o estado já
// transicionado e recebe invalid_state, nunca corrompe.
func (r *BookingGormRepository) TransitionBooking(
	ctx context.Context,
	bookingID uint,
	clinicID uint,
	actor domain.Actor,
	apply func(b *models.Booking) (domain.Details, error),
) (*models.Booking, error) {

	var out models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND clinic_id = ?", bookingID, clinicID).
			First(&b).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness("booking_not_found")
			}
			return err
		}

		details, err := apply(&b)
		if err != nil {
			return err
		}

		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		if err := appendActionLog(tx, b.ID, actor, details); err != nil {
			return err
		}

		out = b
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &out, nil
}

// --------------------------------------------------
// Missed sweep
// --------------------------------------------------

func (r *BookingGormRepository) ListConfirmedBookings(
	ctx context.Context,
) ([]models.Booking, error) {

	var bs []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Clinic").
		Where("status = ?", string(domain.StatusConfirmed)).
		Find(&bs).Error; err != nil {
		return nil, err
	}

	return bs, nil
}

func (r *BookingGormRepository) ConsultationHadLiveSession(
	ctx context.Context,
	consultationID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VideoSession{}).
		Where("consultation_id = ? AND started_at IS NOT NULL", consultationID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Action log
// --------------------------------------------------

func (r *BookingGormRepository) ListActionLog(
	ctx context.Context,
	bookingID uint,
) ([]models.BookingActionLog, error) {

	var logs []models.BookingActionLog
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

func appendActionLog(
	tx *gorm.DB,
	bookingID uint,
	actor domain.Actor,
	details domain.Details,
) error {

	if details == nil {
		return nil
	}

	entry := models.BookingActionLog{
		BookingID:   bookingID,
		Action:      details.Action(),
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		Details:     domain.EncodeDetails(details),
	}

	return tx.Create(&entry).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
