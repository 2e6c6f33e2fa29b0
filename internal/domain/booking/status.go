package booking

import "github.com/vetlinkbr/vetlink-telehealth/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusMissed      Status = "missed"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// IsTerminal: completed e cancelled não saem mais do lugar.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// isPendingLike: rescheduled se comporta como um pending novo
// aguardando re-confirmação do veterinário.
func isPendingLike(s Status) bool {
	return s == StatusPending || s == StatusRescheduled
}

// ===============================
// Transition table
// ===============================

// CanTransition mantém o grafo de transições explícito e pequeno;
// toda mudança de status precisa passar por uma aresta daqui.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending, StatusRescheduled:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusMissed ||
			to == StatusCompleted ||
			to == StatusCancelled ||
			to == StatusPending || // remarcação pelo tutor
			to == StatusConfirmed // remarcação pelo veterinário
	case StatusMissed:
		return to == StatusRescheduled ||
			to == StatusPending ||
			to == StatusConfirmed
	default:
		return false
	}
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if !isPendingLike(current) {
		return httperr.ErrInvalidState("booking", string(current), string(StatusConfirmed))
	}
	return nil
}

func CanCancel(current Status) error {
	if !isPendingLike(current) && current != StatusConfirmed {
		return httperr.ErrInvalidState("booking", string(current), string(StatusCancelled))
	}
	return nil
}

func CanMarkMissed(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrInvalidState("booking", string(current), string(StatusMissed))
	}
	return nil
}

// CanReschedule aceita missed e, por extensão de política, confirmed.
func CanReschedule(current Status) error {
	if current != StatusMissed && current != StatusConfirmed {
		return httperr.ErrInvalidState("booking", string(current), string(StatusRescheduled))
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrInvalidState("booking", string(current), string(StatusCompleted))
	}
	return nil
}
