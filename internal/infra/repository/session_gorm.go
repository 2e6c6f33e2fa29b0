package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/session"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// Consultation
// --------------------------------------------------

func (r *SessionGormRepository) GetOrCreateConsultation(
	ctx context.Context,
	clinicID uint,
	bookingID uint,
) (*models.Consultation, error) {

	var out models.Consultation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// o lock FOR UPDATE num registro que ainda não existe não
		// enfileira ninguém; quem serializa a criação é o lock na
		// linha-mãe (o agendamento)
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

		var c models.Consultation
		err := tx.
			Where("booking_id = ?", bookingID).
			First(&c).Error

		if err == nil {
			out = c
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		c = models.Consultation{
			ClinicID:  clinicID,
			BookingID: bookingID,
			Status:    models.ConsultationOpen,
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}

		// back-reference no agendamento quando a consulta materializa
		if err := tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Update("consultation_id", c.ID).Error; err != nil {
			return err
		}

		out = c
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *SessionGormRepository) GetConsultationByID(
	ctx context.Context,
	id uint,
) (*models.Consultation, error) {

	var c models.Consultation
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("consultation_not_found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *SessionGormRepository) CompleteConsultation(
	ctx context.Context,
	consultationID uint,
) (*models.Consultation, error) {

	var out models.Consultation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var c models.Consultation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, consultationID).Error; err != nil {
			return err
		}

		if c.Status == models.ConsultationCompleted {
			out = c
			return nil
		}

		now := time.Now()
		c.Status = models.ConsultationCompleted
		c.CompletedAt = &now

		if err := tx.Save(&c).Error; err != nil {
			return err
		}

		out = c
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &out, nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

// GetOrCreateSession garante no máximo uma sessão não-encerrada por
// consulta. A serialização é pelo lock na linha da consulta: dois
// chamadores simultâneos entram na fila e o segundo encontra a sessão
// que o primeiro criou.
func (r *SessionGormRepository) GetOrCreateSession(
	ctx context.Context,
	s *models.VideoSession,
) (*models.VideoSession, bool, error) {

	var out models.VideoSession
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var c models.Consultation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, s.ConsultationID).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness("consultation_not_found")
			}
			return err
		}

		var existing models.VideoSession
		err := tx.
			Where("consultation_id = ? AND status <> ?", s.ConsultationID, string(domain.StatusEnded)).
			First(&existing).Error

		if err == nil {
			out = existing
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Create(s).Error; err != nil {
			return err
		}

		out = *s
		created = true
		return nil
	})

	if err != nil {
		return nil, false, err
	}

	return &out, created, nil
}

func (r *SessionGormRepository) GetSessionByID(
	ctx context.Context,
	id uint,
) (*models.VideoSession, error) {

	var s models.VideoSession
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) GetOpenSessionByConsultation(
	ctx context.Context,
	consultationID uint,
) (*models.VideoSession, error) {

	var s models.VideoSession
	if err := r.db.WithContext(ctx).
		Where("consultation_id = ? AND status <> ?", consultationID, string(domain.StatusEnded)).
		Order("id DESC").
		First(&s).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, err
	}

	return &s, nil
}

func (r *SessionGormRepository) TransitionSession(
	ctx context.Context,
	sessionID uint,
	apply func(s *models.VideoSession) error,
) (*models.VideoSession, error) {

	var out models.VideoSession

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var s models.VideoSession
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, sessionID).Error; err != nil {

			if err == gorm.ErrRecordNotFound {
				return httperr.ErrBusiness("session_not_found")
			}
			return err
		}

		if err := apply(&s); err != nil {
			return err
		}

		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		out = s
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &out, nil
}

// --------------------------------------------------
// Messages
// --------------------------------------------------

func (r *SessionGormRepository) AppendMessage(
	ctx context.Context,
	msg *models.ChatMessage,
) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *SessionGormRepository) ListMessagesSince(
	ctx context.Context,
	sessionID uint,
	afterID uint,
) ([]models.ChatMessage, error) {

	var msgs []models.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND id > ?", sessionID, afterID).
		Order("id ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}

	return msgs, nil
}

// Compile-time check
var _ domain.Repository = (*SessionGormRepository)(nil)
