package booking

import "encoding/json"

// ===============================
// Action Log
// ===============================

const (
	ActionCreated     = "BOOKING_CREATED"
	ActionConfirmed   = "BOOKING_CONFIRMED"
	ActionCancelled   = "BOOKING_CANCELLED"
	ActionRescheduled = "BOOKING_RESCHEDULED"
)

// Details é a união etiquetada dos metadados por ação: cada ação tem
// sua própria struct com campos conhecidos em vez de um mapa solto.
type Details interface {
	Action() string
}

type CreatedDetails struct {
	BookingType string `json:"booking_type"`
	Priority    string `json:"priority"`
}

func (CreatedDetails) Action() string { return ActionCreated }

type ConfirmedDetails struct{}

func (ConfirmedDetails) Action() string { return ActionConfirmed }

type CancelledDetails struct {
	Reason string `json:"reason"`
}

func (CancelledDetails) Action() string { return ActionCancelled }

type RescheduledDetails struct {
	NewDate          string `json:"new_date"`
	NewTimeSlotStart string `json:"new_time_slot_start"`
	NewTimeSlotEnd   string `json:"new_time_slot_end"`
	NewStatus        string `json:"new_status"`
}

func (RescheduledDetails) Action() string { return ActionRescheduled }

func EncodeDetails(d Details) string {
	if d == nil {
		return ""
	}

	b, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return string(b)
}
