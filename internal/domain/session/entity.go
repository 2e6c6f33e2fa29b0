package session

import (
	"time"

	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Start(s *models.VideoSession, now time.Time) error {
	if err := CanStart(Status(s.Status)); err != nil {
		return err
	}

	s.Status = string(StatusActive)
	s.StartedAt = &now
	return nil
}

// End encerra a sessão; duração zero quando nunca chegou a começar.
func End(s *models.VideoSession, now time.Time) error {
	if err := CanEnd(Status(s.Status)); err != nil {
		return err
	}

	s.Status = string(StatusEnded)
	s.EndedAt = &now

	if s.StartedAt != nil {
		s.DurationSeconds = int(now.Sub(*s.StartedAt) / time.Second)
	} else {
		s.DurationSeconds = 0
	}

	return nil
}
