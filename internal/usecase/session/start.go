package session

import (
	"context"
	"time"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/session"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type StartSession struct {
	sessions domain.Repository
}

func NewStartSession(sessions domain.Repository) *StartSession {
	return &StartSession{sessions: sessions}
}

// Execute serializa o waiting→active sob lock de linha: exatamente um
// chamador realiza a transição. Quem chega depois encontra active e
// recebe a sessão como sucesso (start é idempotente para o chamador).
func (uc *StartSession) Execute(
	ctx context.Context,
	sessionID uint,
) (*models.VideoSession, error) {

	return uc.sessions.TransitionSession(
		ctx,
		sessionID,
		func(s *models.VideoSession) error {
			if s.Status == string(domain.StatusActive) {
				return nil
			}
			return domain.Start(s, time.Now())
		},
	)
}
