package session

import "github.com/vetlinkbr/vetlink-telehealth/internal/httperr"

// ===============================
// Session Status
// ===============================

// Sempre para frente: waiting -> active -> ended. Não existe volta.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusActive  Status = "active"
	StatusEnded   Status = "ended"
)

func InitialStatus() Status {
	return StatusWaiting
}

func CanTransition(from, to Status) bool {
	switch from {
	case StatusWaiting:
		return to == StatusActive || to == StatusEnded
	case StatusActive:
		return to == StatusEnded
	default:
		return false
	}
}

// ===============================
// Validations
// ===============================

func CanStart(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrInvalidState("session", string(current), string(StatusActive))
	}
	return nil
}

func CanEnd(current Status) error {
	if current != StatusWaiting && current != StatusActive {
		return httperr.ErrInvalidState("session", string(current), string(StatusEnded))
	}
	return nil
}
