package session

import (
	"context"

	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type Repository interface {
	// -------- Consultation --------
	GetOrCreateConsultation(
		ctx context.Context,
		clinicID uint,
		bookingID uint,
	) (*models.Consultation, error)

	GetConsultationByID(
		ctx context.Context,
		id uint,
	) (*models.Consultation, error)

	CompleteConsultation(
		ctx context.Context,
		consultationID uint,
	) (*models.Consultation, error)

	// -------- Session --------
	// GetOrCreateSession devolve a sessão não-encerrada da consulta, se
	// existir (idempotente); caso contrário cria uma nova em waiting.
	GetOrCreateSession(
		ctx context.Context,
		s *models.VideoSession,
	) (*models.VideoSession, bool, error)

	GetSessionByID(
		ctx context.Context,
		id uint,
	) (*models.VideoSession, error)

	GetOpenSessionByConsultation(
		ctx context.Context,
		consultationID uint,
	) (*models.VideoSession, error)

	// TransitionSession aplica a mutação sob lock de linha para que a
	// corrida de start seja resolvida com exatamente um vencedor.
	TransitionSession(
		ctx context.Context,
		sessionID uint,
		apply func(s *models.VideoSession) error,
	) (*models.VideoSession, error)

	// -------- Messages --------
	AppendMessage(
		ctx context.Context,
		msg *models.ChatMessage,
	) error

	ListMessagesSince(
		ctx context.Context,
		sessionID uint,
		afterID uint,
	) ([]models.ChatMessage, error)
}
